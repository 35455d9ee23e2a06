package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/makishop/storefront/internal/backend"
	"github.com/makishop/storefront/internal/domain"
	"github.com/makishop/storefront/internal/journal"
)

// OrdersAdmin is the slice of the orders backend the admin surface needs.
type OrdersAdmin interface {
	List(ctx context.Context, filter backend.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, id int64, patch backend.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

// InventoryAdmin is the slice of the inventory backend the admin surface needs.
type InventoryAdmin interface {
	List(ctx context.Context) ([]domain.Ingredient, error)
	Get(ctx context.Context, id string) (*domain.Ingredient, error)
	Create(ctx context.Context, ingredient backend.NewIngredient) (*domain.Ingredient, error)
	Update(ctx context.Context, id string, patch domain.IngredientPatch) (*domain.Ingredient, error)
	Delete(ctx context.Context, id string) error
}

// MenuAdmin edits the catalogue.
type MenuAdmin interface {
	CreateMaki(ctx context.Context, maki backend.NewMaki) (*domain.Maki, error)
	UpdateMaki(ctx context.Context, id int64, patch backend.MakiPatch) (*domain.Maki, error)
	DeleteMaki(ctx context.Context, id int64) error
}

// JournalReader exposes the local checkout journal for reconciliation.
type JournalReader interface {
	Attempts(ctx context.Context) ([]journal.Attempt, error)
	Lines(ctx context.Context, attemptID string) ([]journal.Line, error)
}

type AdminHandler struct {
	orders    OrdersAdmin
	inventory InventoryAdmin
	menu      MenuAdmin
	journal   JournalReader
}

func NewAdminHandler(orders OrdersAdmin, inventory InventoryAdmin, menu MenuAdmin, jr JournalReader) *AdminHandler {
	return &AdminHandler{orders: orders, inventory: inventory, menu: menu, journal: jr}
}

// GET /api/v1/admin/orders?status=&user_id=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := backend.OrderFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_filter", "user_id must be a number")
			return
		}
		filter.UserID = userID
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		respondBackendError(w, err, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/v1/admin/orders/{order_id}
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "order_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a number")
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondBackendError(w, err, "failed to load the order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// PATCH /api/v1/admin/orders/{order_id}
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "order_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a number")
		return
	}

	var patch backend.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.Update(r.Context(), id, patch)
	if err != nil {
		respondBackendError(w, err, "failed to update the order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DELETE /api/v1/admin/orders/{order_id}
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "order_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a number")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondBackendError(w, err, "failed to delete the order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/admin/ingredients
func (h *AdminHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.inventory.List(r.Context())
	if err != nil {
		respondBackendError(w, err, "failed to list ingredients")
		return
	}
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	respondJSON(w, http.StatusOK, ingredients)
}

// GET /api/v1/admin/ingredients/{ingredient_id}
func (h *AdminHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	ingredient, err := h.inventory.Get(r.Context(), chi.URLParam(r, "ingredient_id"))
	if err != nil {
		respondBackendError(w, err, "failed to load the ingredient")
		return
	}
	respondJSON(w, http.StatusOK, ingredient)
}

// POST /api/v1/admin/ingredients
func (h *AdminHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req backend.NewIngredient
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ingredient, err := h.inventory.Create(r.Context(), req)
	if err != nil {
		respondBackendError(w, err, "failed to create the ingredient")
		return
	}
	respondJSON(w, http.StatusCreated, ingredient)
}

// PATCH /api/v1/admin/ingredients/{ingredient_id}
func (h *AdminHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	var patch domain.IngredientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ingredient, err := h.inventory.Update(r.Context(), chi.URLParam(r, "ingredient_id"), patch)
	if err != nil {
		respondBackendError(w, err, "failed to update the ingredient")
		return
	}
	respondJSON(w, http.StatusOK, ingredient)
}

// DELETE /api/v1/admin/ingredients/{ingredient_id}
func (h *AdminHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.Delete(r.Context(), chi.URLParam(r, "ingredient_id")); err != nil {
		respondBackendError(w, err, "failed to delete the ingredient")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/admin/makis
func (h *AdminHandler) CreateMaki(w http.ResponseWriter, r *http.Request) {
	var req backend.NewMaki
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	maki, err := h.menu.CreateMaki(r.Context(), req)
	if err != nil {
		respondBackendError(w, err, "failed to create the maki")
		return
	}
	respondJSON(w, http.StatusCreated, maki)
}

// PATCH /api/v1/admin/makis/{maki_id}
func (h *AdminHandler) UpdateMaki(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "maki_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "maki id must be a number")
		return
	}

	var patch backend.MakiPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	maki, err := h.menu.UpdateMaki(r.Context(), id, patch)
	if err != nil {
		respondBackendError(w, err, "failed to update the maki")
		return
	}
	respondJSON(w, http.StatusOK, maki)
}

// DELETE /api/v1/admin/makis/{maki_id}
func (h *AdminHandler) DeleteMaki(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "maki_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "maki id must be a number")
		return
	}

	if err := h.menu.DeleteMaki(r.Context(), id); err != nil {
		respondBackendError(w, err, "failed to delete the maki")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type AttemptDTO struct {
	ID          string    `json:"id"`
	BuyerEmail  string    `json:"buyer_email"`
	LineCount   int       `json:"line_count"`
	BuyerID     int64     `json:"buyer_id"`
	BuyerSource string    `json:"buyer_source"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
}

type LineDTO struct {
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Error     string `json:"error,omitempty"`
}

// GET /api/v1/admin/checkout-attempts
func (h *AdminHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.journal.Attempts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "journal_error", "failed to read checkout attempts")
		return
	}

	out := make([]AttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, AttemptDTO{
			ID:          a.ID,
			BuyerEmail:  a.BuyerEmail,
			LineCount:   a.LineCount,
			BuyerID:     a.BuyerID,
			BuyerSource: a.BuyerSource,
			Status:      a.Status,
			StartedAt:   a.StartedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/admin/checkout-attempts/{attempt_id}/lines
func (h *AdminHandler) ListAttemptLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.journal.Lines(r.Context(), chi.URLParam(r, "attempt_id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "journal_error", "failed to read attempt lines")
		return
	}

	out := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineDTO{ProductID: l.ProductID, OrderID: l.OrderID, Error: l.Error})
	}
	respondJSON(w, http.StatusOK, out)
}
