package sparkhub

import (
	"context"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// UpdateEmail changes the account email.
func (c *Client) UpdateEmail(ctx context.Context, req api.UpdateEmailRequest) error {
	return c.p.Put(ctx, "/users/profile/email", req, nil)
}

// UpdatePassword changes the account password. The backend revokes the
// current token on success, so the caller should expect a fresh login.
func (c *Client) UpdatePassword(ctx context.Context, req api.UpdatePasswordRequest) error {
	return c.p.Put(ctx, "/users/profile/password", req, nil)
}

// UpdateAvatar sets the avatar URL and returns the refreshed profile.
func (c *Client) UpdateAvatar(ctx context.Context, req api.UpdateAvatarRequest) (api.User, error) {
	var out api.User
	err := c.p.Post(ctx, "/users/avatar", req, &out)
	return out, err
}
