package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makishop/storefront/internal/backend"
	"github.com/makishop/storefront/internal/domain"
	"github.com/makishop/storefront/internal/journal"
)

type mockOrdersAdmin struct {
	orders     []domain.Order
	err        error
	lastFilter backend.OrderFilter
	lastPatch  backend.OrderPatch
	deleted    []int64
}

func (m *mockOrdersAdmin) List(ctx context.Context, filter backend.OrderFilter) ([]domain.Order, error) {
	m.lastFilter = filter
	return m.orders, m.err
}

func (m *mockOrdersAdmin) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.orders[0], nil
}

func (m *mockOrdersAdmin) Update(ctx context.Context, id int64, patch backend.OrderPatch) (*domain.Order, error) {
	m.lastPatch = patch
	if m.err != nil {
		return nil, m.err
	}
	return &m.orders[0], nil
}

func (m *mockOrdersAdmin) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

type mockInventoryAdmin struct {
	ingredients []domain.Ingredient
	err         error
	lastPatch   domain.IngredientPatch
}

func (m *mockInventoryAdmin) List(ctx context.Context) ([]domain.Ingredient, error) {
	return m.ingredients, m.err
}

func (m *mockInventoryAdmin) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.ingredients[0], nil
}

func (m *mockInventoryAdmin) Create(ctx context.Context, ingredient backend.NewIngredient) (*domain.Ingredient, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := domain.Ingredient{ID: "ing-1", Name: ingredient.Name}
	return &created, nil
}

func (m *mockInventoryAdmin) Update(ctx context.Context, id string, patch domain.IngredientPatch) (*domain.Ingredient, error) {
	m.lastPatch = patch
	if m.err != nil {
		return nil, m.err
	}
	return &m.ingredients[0], nil
}

func (m *mockInventoryAdmin) Delete(ctx context.Context, id string) error { return m.err }

type mockMenuAdmin struct {
	maki *domain.Maki
	err  error
}

func (m *mockMenuAdmin) CreateMaki(ctx context.Context, maki backend.NewMaki) (*domain.Maki, error) {
	return m.maki, m.err
}

func (m *mockMenuAdmin) UpdateMaki(ctx context.Context, id int64, patch backend.MakiPatch) (*domain.Maki, error) {
	return m.maki, m.err
}

func (m *mockMenuAdmin) DeleteMaki(ctx context.Context, id int64) error { return m.err }

type mockJournalReader struct {
	attempts []journal.Attempt
	lines    []journal.Line
	err      error
	lastID   string
}

func (m *mockJournalReader) Attempts(ctx context.Context) ([]journal.Attempt, error) {
	return m.attempts, m.err
}

func (m *mockJournalReader) Lines(ctx context.Context, attemptID string) ([]journal.Line, error) {
	m.lastID = attemptID
	return m.lines, m.err
}

func newAdminRouter(orders *mockOrdersAdmin, inventory *mockInventoryAdmin, menu *mockMenuAdmin, jr JournalReader) http.Handler {
	h := NewAdminHandler(orders, inventory, menu, jr)
	r := chiRouterForTest()
	r.Get("/admin/orders", h.ListOrders)
	r.Get("/admin/orders/{order_id}", h.GetOrder)
	r.Patch("/admin/orders/{order_id}", h.UpdateOrder)
	r.Delete("/admin/orders/{order_id}", h.DeleteOrder)
	r.Get("/admin/ingredients", h.ListIngredients)
	r.Post("/admin/ingredients", h.CreateIngredient)
	r.Patch("/admin/ingredients/{ingredient_id}", h.UpdateIngredient)
	r.Get("/admin/checkout-attempts", h.ListAttempts)
	r.Get("/admin/checkout-attempts/{attempt_id}/lines", h.ListAttemptLines)
	return r
}

func TestListOrdersPassesFilter(t *testing.T) {
	orders := &mockOrdersAdmin{orders: []domain.Order{{ID: 1, Status: "pending"}}}
	router := newAdminRouter(orders, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending&user_id=42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", orders.lastFilter.Status)
	assert.Equal(t, int64(42), orders.lastFilter.UserID)
}

func TestListOrdersRejectsBadUserID(t *testing.T) {
	router := newAdminRouter(&mockOrdersAdmin{}, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?user_id=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendStatusForwarded(t *testing.T) {
	orders := &mockOrdersAdmin{err: &backend.APIError{Status: http.StatusNotFound, Detail: "Order not found"}}
	router := newAdminRouter(orders, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Order not found", resp.Details)
}

func TestBackendUnreachableIs502(t *testing.T) {
	orders := &mockOrdersAdmin{err: errors.New("connection refused")}
	router := newAdminRouter(orders, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUpdateOrderForwardsPatch(t *testing.T) {
	orders := &mockOrdersAdmin{orders: []domain.Order{{ID: 1}}}
	router := newAdminRouter(orders, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	body := bytes.NewReader([]byte(`{"status":"shipped"}`))
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/orders/1", body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, orders.lastPatch.Status)
	assert.Equal(t, "shipped", *orders.lastPatch.Status)
	assert.Nil(t, orders.lastPatch.TotalPrice)
}

func TestDeleteOrder(t *testing.T) {
	orders := &mockOrdersAdmin{}
	router := newAdminRouter(orders, &mockInventoryAdmin{}, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/orders/5", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{5}, orders.deleted)
}

func TestUpdateIngredientDecodesPatch(t *testing.T) {
	inventory := &mockInventoryAdmin{ingredients: []domain.Ingredient{{ID: "ing-1"}}}
	router := newAdminRouter(&mockOrdersAdmin{}, inventory, &mockMenuAdmin{}, &mockJournalReader{})

	rec := httptest.NewRecorder()
	body := bytes.NewReader([]byte(`{"stockActual":12.5}`))
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/ingredients/ing-1", body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, inventory.lastPatch.CurrentStock)
	assert.InDelta(t, 12.5, *inventory.lastPatch.CurrentStock, 0.001)
	assert.Nil(t, inventory.lastPatch.Name)
}

func TestListAttempts(t *testing.T) {
	jr := &mockJournalReader{attempts: []journal.Attempt{{
		ID:          "a-1",
		BuyerEmail:  "juan@example.com",
		LineCount:   2,
		BuyerID:     42,
		BuyerSource: "created",
		Status:      "completed",
		StartedAt:   time.Now(),
	}}}
	router := newAdminRouter(&mockOrdersAdmin{}, &mockInventoryAdmin{}, &mockMenuAdmin{}, jr)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/checkout-attempts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []AttemptDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "a-1", resp[0].ID)
	assert.Equal(t, int64(42), resp[0].BuyerID)
}

func TestListAttemptLines(t *testing.T) {
	jr := &mockJournalReader{lines: []journal.Line{
		{ProductID: 7, OrderID: 9},
		{ProductID: 8, Error: "orders backend: 500"},
	}}
	router := newAdminRouter(&mockOrdersAdmin{}, &mockInventoryAdmin{}, &mockMenuAdmin{}, jr)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/checkout-attempts/a-1/lines", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a-1", jr.lastID)
	var resp []LineDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(9), resp[0].OrderID)
	assert.Equal(t, "orders backend: 500", resp[1].Error)
}
