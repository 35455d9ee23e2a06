package cartstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/makishop/storefront/internal/bus"
	"github.com/makishop/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStore(t *testing.T) *FileStore {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStore_LoadMissingSnapshot(t *testing.T) {
	store := setupFileStore(t)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := setupFileStore(t)
	ctx := context.Background()

	saved := []domain.CartLineItem{
		{ProductID: 7, Name: "Acevichado", UnitPrice: 18.50, Quantity: 2, VariantLabel: "5 rolls", Allergy: domain.AllergyNo},
		{ProductID: 9, Name: "Furai", UnitPrice: 22.90, Quantity: 1, VariantLabel: "10 rolls", Allergy: domain.AllergyYes},
	}

	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestFileStore_LoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte(`{"not":"a list"`), 0o644))

	items, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, items)
}

func TestFileStore_LoadNonArraySnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	// Valid JSON, wrong shape
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte(`{"product_id":1}`), 0o644))

	items, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, items)
}

func TestFileStore_AppendKeepsDuplicateLines(t *testing.T) {
	store := setupFileStore(t)
	ctx := context.Background()

	item := domain.CartLineItem{ProductID: 7, Name: "Acevichado", UnitPrice: 18.50, Quantity: 1}
	require.NoError(t, store.Append(ctx, item))
	require.NoError(t, store.Append(ctx, item))

	items, err := store.Load(ctx)
	require.NoError(t, err)
	// Re-adding the same product creates a second independent line
	assert.Len(t, items, 2)
}

func TestFileStore_SaveIsTotalReplacement(t *testing.T) {
	store := setupFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.CartLineItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}))
	require.NoError(t, store.Save(ctx, []domain.CartLineItem{
		{ProductID: 3, Quantity: 5},
	}))

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ProductID)
}

func TestFileStore_Clear(t *testing.T) {
	store := setupFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.CartLineItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, store.Clear(ctx))

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWithNotifications_PublishesOnEveryMutation(t *testing.T) {
	store := setupFileStore(t)
	b := bus.New()

	var changes int
	b.Subscribe(bus.SignalCartChanged, func() { changes++ })

	notifying := WithNotifications(store, b)
	ctx := context.Background()

	require.NoError(t, notifying.Append(ctx, domain.CartLineItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, notifying.Save(ctx, []domain.CartLineItem{{ProductID: 1, Quantity: 2}}))
	require.NoError(t, notifying.Clear(ctx))

	assert.Equal(t, 3, changes)
}

func TestWithNotifications_LoadDoesNotPublish(t *testing.T) {
	store := setupFileStore(t)
	b := bus.New()

	var changes int
	b.Subscribe(bus.SignalCartChanged, func() { changes++ })

	notifying := WithNotifications(store, b)
	_, err := notifying.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, changes)
}
