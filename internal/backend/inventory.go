package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/makishop/storefront/internal/domain"
)

// InventoryClient talks to the ingredient stock backend. Only admin surfaces
// consume it.
type InventoryClient struct {
	api *Client
}

func NewInventoryClient(api *Client) *InventoryClient {
	return &InventoryClient{api: api}
}

// NewIngredient is the creation payload for a stock record.
type NewIngredient struct {
	Name         string  `json:"nombre"`
	Category     string  `json:"categoria"`
	Unit         string  `json:"unidad"`
	CurrentStock float64 `json:"stockActual"`
	MinimumStock float64 `json:"stockMinimo"`
	UnitPrice    float64 `json:"precioUnitario"`
	Active       bool    `json:"activo"`
}

func (c *InventoryClient) List(ctx context.Context) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if err := c.api.do(ctx, http.MethodGet, "/ingredientes", nil, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (c *InventoryClient) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := c.api.do(ctx, http.MethodGet, "/ingredientes/"+id, nil, &ingredient); err != nil {
		return nil, fmt.Errorf("failed to get ingredient %s: %w", id, err)
	}
	return &ingredient, nil
}

func (c *InventoryClient) Create(ctx context.Context, ingredient NewIngredient) (*domain.Ingredient, error) {
	var created domain.Ingredient
	if err := c.api.do(ctx, http.MethodPost, "/ingredientes", ingredient, &created); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &created, nil
}

// Update PATCHes only the fields set on the patch; unset fields are omitted
// from the body entirely.
func (c *InventoryClient) Update(ctx context.Context, id string, patch domain.IngredientPatch) (*domain.Ingredient, error) {
	var updated domain.Ingredient
	if err := c.api.do(ctx, http.MethodPatch, "/ingredientes/"+id, patch, &updated); err != nil {
		return nil, fmt.Errorf("failed to update ingredient %s: %w", id, err)
	}
	return &updated, nil
}

func (c *InventoryClient) Delete(ctx context.Context, id string) error {
	if err := c.api.do(ctx, http.MethodDelete, "/ingredientes/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete ingredient %s: %w", id, err)
	}
	return nil
}
