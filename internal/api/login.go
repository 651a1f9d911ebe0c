package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// LoginRequest is the JSON payload of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login starts a cookie session and returns the logged-in user in
// Response.User.
func (c *Client) Login(ctx context.Context, r LoginRequest) (*Response, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "api: encoding login request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Logout ends the cookie session.
func (c *Client) Logout(ctx context.Context) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/logout", nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}
