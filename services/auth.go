package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/timecrax/webapp/models"
)

// Login exchanges credentials for a bearer token. The returned user may be
// absent; callers needing the profile should follow up with Me.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if res.Token == "" {
		return models.AuthResponse{}, errors.New("login response carried no token")
	}
	return res, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &res)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if res.Token == "" {
		return models.AuthResponse{}, errors.New("register response carried no token")
	}
	return res, nil
}
