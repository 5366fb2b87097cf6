package api

// AdminUser is the shape returned by the admin user-management endpoints.
type AdminUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// ProjectAuditRequest is the payload for PUT /admin/projects/{id}/status:
// the reviewed project's new status (funding on approval, failed on reject).
type ProjectAuditRequest struct {
	Status int `json:"status"`
}

// RoleUpdateRequest is the payload for PUT /admin/users/{id}/role.
// IsAdd true grants the role, false revokes it.
type RoleUpdateRequest struct {
	RoleName string `json:"roleName" validate:"required"`
	IsAdd    bool   `json:"isAdd"`
}

// AdminProjectListParams are the query parameters for GET /admin/projects.
type AdminProjectListParams struct {
	PageNum  int
	PageSize int
	Status   int
	// HasStatus distinguishes "status=0" (pending review) from no filter.
	HasStatus bool
}

// AdminUserListParams are the query parameters for GET /admin/users.
type AdminUserListParams struct {
	PageNum  int
	PageSize int
}
