package sparkhub

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// ListProjects returns one page of the public project catalogue.
func (c *Client) ListProjects(ctx context.Context, params api.ProjectListParams) (api.Page[api.Project], error) {
	q := pageQuery(nil, params.PageNum, params.PageSize)
	if params.CategoryID > 0 {
		q.Set("categoryId", itoa(params.CategoryID))
	}
	if params.HasStatus {
		q.Set("status", strconv.Itoa(params.Status))
	}
	var out api.Page[api.Project]
	err := c.p.Get(ctx, "/projects", q, &out)
	return out, err
}

// GetProject returns one project with its reward tiers.
func (c *Client) GetProject(ctx context.Context, id int64) (api.Project, error) {
	var out api.Project
	err := c.p.Get(ctx, "/projects/"+itoa(id), nil, &out)
	return out, err
}

// CreateProject submits a new project for review.
func (c *Client) CreateProject(ctx context.Context, req api.ProjectCreateRequest) (api.Project, error) {
	var out api.Project
	err := c.p.Post(ctx, "/projects", req, &out)
	return out, err
}

// UpdateProject replaces an existing project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id int64, req api.ProjectUpdateRequest) (api.Project, error) {
	var out api.Project
	err := c.p.Put(ctx, "/projects/"+itoa(id), req, &out)
	return out, err
}

// MyProjects returns the authenticated user's own projects, unpaged.
func (c *Client) MyProjects(ctx context.Context) ([]api.Project, error) {
	var out []api.Project
	err := c.p.Get(ctx, "/projects/my", nil, &out)
	return out, err
}

// ListCategories returns the project categories used for filtering and
// project creation.
func (c *Client) ListCategories(ctx context.Context) ([]api.Category, error) {
	var out []api.Category
	err := c.p.Get(ctx, "/categories", url.Values{}, &out)
	return out, err
}
