package gateway

import (
	"context"
	"net/http"
	"net/url"

	"doctama-backoffice/internal/model"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	return fetchList[model.User](ctx, c, "/adminusers/all")
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/adminusers/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRequest carries the editable profile fields. Zero values are
// sent as-is; the remote API decides what a blank field means.
type UpdateUserRequest struct {
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	Province   string      `json:"province"`
	PostalCode string      `json:"postalCode"`
	Roles      model.Roles `json:"roles"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/adminusers/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/adminusers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ToggleUserStatus(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPatch, "/adminusers/"+url.PathEscape(id)+"/toggle-status", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
