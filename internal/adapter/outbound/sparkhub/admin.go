package sparkhub

import (
	"context"
	"strconv"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// AdminListProjects returns one page of projects for review. The admin
// list view defaults to the pending-review filter.
func (c *Client) AdminListProjects(ctx context.Context, params api.AdminProjectListParams) (api.Page[api.ProjectSummary], error) {
	q := pageQuery(nil, params.PageNum, params.PageSize)
	if params.HasStatus {
		q.Set("status", strconv.Itoa(params.Status))
	}
	var out api.Page[api.ProjectSummary]
	err := c.p.Get(ctx, "/admin/projects", q, &out)
	return out, err
}

// AuditProject sets a reviewed project's status: funding on approval,
// failed on rejection.
func (c *Client) AuditProject(ctx context.Context, id int64, req api.ProjectAuditRequest) (api.Project, error) {
	var out api.Project
	err := c.p.Put(ctx, "/admin/projects/"+itoa(id)+"/status", req, &out)
	return out, err
}

// AdminListUsers returns one page of all accounts.
func (c *Client) AdminListUsers(ctx context.Context, params api.AdminUserListParams) (api.Page[api.AdminUser], error) {
	q := pageQuery(nil, params.PageNum, params.PageSize)
	var out api.Page[api.AdminUser]
	err := c.p.Get(ctx, "/admin/users", q, &out)
	return out, err
}

// UpdateUserRole grants or revokes one role on an account.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, req api.RoleUpdateRequest) (api.AdminUser, error) {
	var out api.AdminUser
	err := c.p.Put(ctx, "/admin/users/"+itoa(id)+"/role", req, &out)
	return out, err
}
