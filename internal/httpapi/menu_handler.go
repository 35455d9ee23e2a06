package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/makishop/storefront/internal/backend"
	"github.com/makishop/storefront/internal/domain"
)

// MenuService lists the catalogue a shopper browses.
type MenuService interface {
	ListMakis(ctx context.Context) ([]domain.Maki, error)
	GetMaki(ctx context.Context, id int64) (*domain.Maki, error)
}

type MenuHandler struct {
	menu MenuService
}

func NewMenuHandler(menu MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// GET /api/v1/makis
func (h *MenuHandler) ListMakis(w http.ResponseWriter, r *http.Request) {
	makis, err := h.menu.ListMakis(r.Context())
	if err != nil {
		respondBackendError(w, err, "failed to load the menu")
		return
	}
	if makis == nil {
		makis = []domain.Maki{}
	}
	respondJSON(w, http.StatusOK, makis)
}

// GET /api/v1/makis/{maki_id}
func (h *MenuHandler) GetMaki(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "maki_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "maki id must be a number")
		return
	}

	maki, err := h.menu.GetMaki(r.Context(), id)
	if err != nil {
		respondBackendError(w, err, "failed to load the maki")
		return
	}
	respondJSON(w, http.StatusOK, maki)
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// respondBackendError forwards a backend status when the upstream answered
// and falls back to 502 when it did not.
func respondBackendError(w http.ResponseWriter, err error, details string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.Status, "backend_error", apiErr.Detail)
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unreachable", details)
}
