package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/makishop/storefront/internal/domain"
)

// ErrDuplicateEmail signals that buyer creation was rejected because the
// email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// duplicateEmailDetail is the exact detail string the orders backend returns
// for a duplicate registration.
const duplicateEmailDetail = "Email already exists"

// UsersClient talks to the buyer directory of the orders backend.
type UsersClient struct {
	api *Client
}

func NewUsersClient(api *Client) *UsersClient {
	return &UsersClient{api: api}
}

func (c *UsersClient) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.api.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (c *UsersClient) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/", id), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create registers a new buyer and returns the assigned id. A rejection for
// an already-registered email comes back as ErrDuplicateEmail.
func (c *UsersClient) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	// Some deployments answer with "id", others with "user_id"
	var created struct {
		ID     int64 `json:"id"`
		UserID int64 `json:"user_id"`
	}
	err := c.api.do(ctx, http.MethodPost, "/users/", user, &created)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest && apiErr.Detail == duplicateEmailDetail {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	if created.ID != 0 {
		return created.ID, nil
	}
	return created.UserID, nil
}
