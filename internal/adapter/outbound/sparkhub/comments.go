package sparkhub

import (
	"context"
	"net/url"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// ListComments returns a project's comment tree, sorted by the given
// order (api.CommentSortTime or api.CommentSortHotness).
func (c *Client) ListComments(ctx context.Context, projectID int64, sortBy string) ([]api.Comment, error) {
	q := url.Values{}
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	var out []api.Comment
	err := c.p.Get(ctx, "/projects/"+itoa(projectID)+"/comments", q, &out)
	return out, err
}

// CreateComment posts a comment or, when req.ParentID is set, a reply.
func (c *Client) CreateComment(ctx context.Context, projectID int64, req api.CommentCreateRequest) (api.Comment, error) {
	var out api.Comment
	err := c.p.Post(ctx, "/projects/"+itoa(projectID)+"/comments", req, &out)
	return out, err
}

// LikeComment adds the user's like to a comment.
func (c *Client) LikeComment(ctx context.Context, id int64) error {
	return c.p.Post(ctx, "/comments/"+itoa(id)+"/like", nil, nil)
}

// UnlikeComment removes the user's like from a comment.
func (c *Client) UnlikeComment(ctx context.Context, id int64) error {
	return c.p.Delete(ctx, "/comments/"+itoa(id)+"/like")
}
