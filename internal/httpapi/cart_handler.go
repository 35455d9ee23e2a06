package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/makishop/storefront/internal/bus"
	"github.com/makishop/storefront/internal/domain"
)

// CartService is the slice of the cart view-model the handler needs.
type CartService interface {
	Reload(ctx context.Context) error
	Items() []domain.CartLineItem
	Total() float64
	Append(ctx context.Context, item domain.CartLineItem) error
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	RemoveLine(ctx context.Context, productID int64) error
}

// MenuReader resolves the product a shopper is adding.
type MenuReader interface {
	GetMaki(ctx context.Context, id int64) (*domain.Maki, error)
}

type CartHandler struct {
	cart CartService
	menu MenuReader
	bus  *bus.Bus
}

func NewCartHandler(cart CartService, menu MenuReader, b *bus.Bus) *CartHandler {
	return &CartHandler{cart: cart, menu: menu, bus: b}
}

type AddItemRequestDTO struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	VariantLabel string `json:"variant"`
	Allergy      string `json:"allergy"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items []domain.CartLineItem `json:"items"`
	Total float64               `json:"total"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	// Re-read the persisted snapshot so external mutations show up
	if err := h.cart.Reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not read cart")
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: h.cart.Items(), Total: h.cart.Total()})
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "product_id is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	maki, err := h.menu.GetMaki(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "menu_unavailable", "could not resolve product")
		return
	}

	allergy := domain.AllergyNo
	if req.Allergy == string(domain.AllergyYes) {
		allergy = domain.AllergyYes
	}

	item := domain.CartLineItem{
		ProductID:    maki.ID,
		Name:         maki.Name,
		UnitPrice:    maki.Price,
		Quantity:     req.Quantity,
		VariantLabel: req.VariantLabel,
		Allergy:      allergy,
	}
	if err := h.cart.Append(r.Context(), item); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_write_failed", "could not add item")
		return
	}

	// Ask the shell to open the cart panel, original add-to-cart behavior
	h.bus.Publish(bus.SignalOpenCart)

	respondJSON(w, http.StatusCreated, CartResponseDTO{Items: h.cart.Items(), Total: h.cart.Total()})
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product", "invalid product_id")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.cart.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_write_failed", "could not update quantity")
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: h.cart.Items(), Total: h.cart.Total()})
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product", "invalid product_id")
		return
	}

	if err := h.cart.RemoveLine(r.Context(), productID); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_write_failed", "could not remove item")
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: h.cart.Items(), Total: h.cart.Total()})
}

func productIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
}
