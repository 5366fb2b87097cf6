package sparkhub

import (
	"context"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// MyFavorites returns the projects the user has favorited, unpaged.
func (c *Client) MyFavorites(ctx context.Context) ([]api.ProjectSummary, error) {
	var out []api.ProjectSummary
	err := c.p.Get(ctx, "/favorites/my", nil, &out)
	return out, err
}

// AddFavorite favorites a project.
func (c *Client) AddFavorite(ctx context.Context, projectID int64) error {
	return c.p.Post(ctx, "/favorites/"+itoa(projectID), nil, nil)
}

// RemoveFavorite removes a project from the user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, projectID int64) error {
	return c.p.Delete(ctx, "/favorites/"+itoa(projectID))
}
