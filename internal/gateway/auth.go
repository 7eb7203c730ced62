package gateway

import (
	"context"
	"net/http"

	"doctama-backoffice/internal/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authPayload is the {"data":{"user":...,"token":...}} envelope both auth
// endpoints return.
type authPayload struct {
	Data struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	} `json:"data"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &payload); err != nil {
		return nil, "", err
	}
	return &payload.Data.User, payload.Data.Token, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &payload); err != nil {
		return nil, "", err
	}
	return &payload.Data.User, payload.Data.Token, nil
}
