package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/makishop/storefront/internal/domain"
)

// MenuClient talks to the menu backend serving the maki catalog.
type MenuClient struct {
	api *Client
}

func NewMenuClient(api *Client) *MenuClient {
	return &MenuClient{api: api}
}

// NewMaki is the creation payload for a menu item.
type NewMaki struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Ingredients []int64 `json:"ingredientes,omitempty"`
}

// MakiPatch carries only the fields an update wants to change.
type MakiPatch struct {
	Name        *string  `json:"nombre,omitempty"`
	Description *string  `json:"descripcion,omitempty"`
	Price       *float64 `json:"precio,omitempty"`
	Ingredients []int64  `json:"ingredientes,omitempty"`
}

func (c *MenuClient) ListMakis(ctx context.Context) ([]domain.Maki, error) {
	var makis []domain.Maki
	if err := c.api.do(ctx, http.MethodGet, "/api/makis", nil, &makis); err != nil {
		return nil, fmt.Errorf("failed to list makis: %w", err)
	}
	return makis, nil
}

func (c *MenuClient) GetMaki(ctx context.Context, id int64) (*domain.Maki, error) {
	var maki domain.Maki
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/api/makis/%d", id), nil, &maki); err != nil {
		return nil, fmt.Errorf("failed to get maki %d: %w", id, err)
	}
	return &maki, nil
}

func (c *MenuClient) CreateMaki(ctx context.Context, maki NewMaki) (*domain.Maki, error) {
	var created domain.Maki
	if err := c.api.do(ctx, http.MethodPost, "/api/makis", maki, &created); err != nil {
		return nil, fmt.Errorf("failed to create maki: %w", err)
	}
	return &created, nil
}

func (c *MenuClient) UpdateMaki(ctx context.Context, id int64, patch MakiPatch) (*domain.Maki, error) {
	var updated domain.Maki
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("/api/makis/%d", id), patch, &updated); err != nil {
		return nil, fmt.Errorf("failed to update maki %d: %w", id, err)
	}
	return &updated, nil
}

func (c *MenuClient) DeleteMaki(ctx context.Context, id int64) error {
	if err := c.api.do(ctx, http.MethodDelete, fmt.Sprintf("/api/makis/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete maki %d: %w", id, err)
	}
	return nil
}
