package cartstore

import (
	"context"

	"github.com/makishop/storefront/internal/bus"
	"github.com/makishop/storefront/internal/domain"
)

// Store persists the cart snapshot for the current shopper profile.
// Consumers define this interface, not the storage implementations.
//
// Load fails soft: a missing or unparseable snapshot yields an empty cart,
// never an error. Save overwrites the whole snapshot, total replacement, not
// merge. There is no concurrency control, last writer wins.
type Store interface {
	Load(ctx context.Context) ([]domain.CartLineItem, error)
	Save(ctx context.Context, items []domain.CartLineItem) error
	Append(ctx context.Context, item domain.CartLineItem) error
	Clear(ctx context.Context) error
}

// StorageKey is the fixed key the cart snapshot lives under, regardless of
// backend.
const StorageKey = "cart"

type notifyingStore struct {
	inner Store
	bus   *bus.Bus
}

// WithNotifications decorates a store so that every successful mutation
// publishes SignalCartChanged.
func WithNotifications(s Store, b *bus.Bus) Store {
	return &notifyingStore{inner: s, bus: b}
}

func (n *notifyingStore) Load(ctx context.Context) ([]domain.CartLineItem, error) {
	return n.inner.Load(ctx)
}

func (n *notifyingStore) Save(ctx context.Context, items []domain.CartLineItem) error {
	if err := n.inner.Save(ctx, items); err != nil {
		return err
	}
	n.bus.Publish(bus.SignalCartChanged)
	return nil
}

func (n *notifyingStore) Append(ctx context.Context, item domain.CartLineItem) error {
	if err := n.inner.Append(ctx, item); err != nil {
		return err
	}
	n.bus.Publish(bus.SignalCartChanged)
	return nil
}

func (n *notifyingStore) Clear(ctx context.Context) error {
	if err := n.inner.Clear(ctx); err != nil {
		return err
	}
	n.bus.Publish(bus.SignalCartChanged)
	return nil
}
