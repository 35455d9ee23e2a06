package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/makishop/storefront/internal/domain"
)

// OrdersClient talks to the order resource of the orders backend.
type OrdersClient struct {
	api *Client
}

func NewOrdersClient(api *Client) *OrdersClient {
	return &OrdersClient{api: api}
}

// OrderFilter narrows a listing; zero values mean "no filter".
type OrderFilter struct {
	Status string
	UserID int64
}

// OrderPatch carries only the fields an update wants to change.
type OrderPatch struct {
	UserID        *int64   `json:"user_id,omitempty"`
	ProductID     *int64   `json:"product_id,omitempty"`
	Status        *string  `json:"status,omitempty"`
	TotalPrice    *float64 `json:"total_price,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

func (c *OrdersClient) Create(ctx context.Context, order domain.NewOrder) (*domain.Order, error) {
	var created domain.Order
	if err := c.api.do(ctx, http.MethodPost, "/orders/", order, &created); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &created, nil
}

func (c *OrdersClient) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	q := url.Values{}
	if filter.Status != "" && filter.Status != "all" {
		q.Set("status", filter.Status)
	}
	if filter.UserID != 0 {
		q.Set("user_id", fmt.Sprint(filter.UserID))
	}
	path := "/orders/"
	if qs := q.Encode(); qs != "" {
		path += "?" + qs
	}

	var orders []domain.Order
	if err := c.api.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *OrdersClient) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

func (c *OrdersClient) Update(ctx context.Context, id int64, patch OrderPatch) (*domain.Order, error) {
	var updated domain.Order
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), patch, &updated); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return &updated, nil
}

func (c *OrdersClient) Delete(ctx context.Context, id int64) error {
	if err := c.api.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}
