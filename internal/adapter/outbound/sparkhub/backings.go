package sparkhub

import (
	"context"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// CreateBacking pledges against a reward tier. The created backing starts
// in the pending-payment state.
func (c *Client) CreateBacking(ctx context.Context, req api.BackingCreateRequest) (api.Backing, error) {
	var out api.Backing
	err := c.p.Post(ctx, "/backings", req, &out)
	return out, err
}

// PayBacking settles a pending backing.
func (c *Client) PayBacking(ctx context.Context, id int64) error {
	return c.p.Post(ctx, "/backings/"+itoa(id)+"/pay", nil, nil)
}

// MyBackings returns the authenticated user's backings, unpaged.
func (c *Client) MyBackings(ctx context.Context) ([]api.Backing, error) {
	var out []api.Backing
	err := c.p.Get(ctx, "/backings/my", nil, &out)
	return out, err
}
