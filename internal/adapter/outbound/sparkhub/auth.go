package sparkhub

import (
	"context"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error) {
	var out api.LoginResponse
	err := c.p.Post(ctx, "/auth/login", req, &out)
	return out, err
}

// Register creates a new account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) error {
	return c.p.Post(ctx, "/auth/register", req, nil)
}

// Logout invalidates the server-side session. A failure here is not
// fatal: the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.p.Post(ctx, "/auth/logout", nil, nil)
}
