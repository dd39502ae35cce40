package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// Ping probes the unauthenticated status endpoint. The token is attached
// when one is usable, so the response also tells whether it was accepted.
func (c *HTTPClient) Ping(ctx context.Context) (models.AuthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/status", nil, nil, false)
	if err != nil {
		return models.AuthStatus{}, err
	}
	_ = c.authorize(req)

	var st models.AuthStatus
	if err := c.send(req, &st); err != nil {
		return models.AuthStatus{}, err
	}
	return st, nil
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
