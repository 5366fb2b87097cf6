package api

import "encoding/json"

// Well-known role names.
const (
	RoleUser    = "ROLE_USER"
	RoleCreator = "ROLE_CREATOR"
	RoleAdmin   = "ROLE_ADMIN"
)

// Role is a role entry attached to a user. The backend is inconsistent
// about the shape: login returns {id, name} records while some admin
// endpoints return bare name strings. UnmarshalJSON accepts both and
// normalizes at ingestion, so the rest of the client only ever sees Name.
type Role struct {
	ID   int64
	Name string
}

// UnmarshalJSON decodes either a bare string or an {id, name} record.
func (r *Role) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		r.ID = 0
		return json.Unmarshal(b, &r.Name)
	}
	var rec struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	r.ID = rec.ID
	r.Name = rec.Name
	return nil
}

// MarshalJSON always emits the record form so persisted sessions
// round-trip through the same decoder.
func (r Role) MarshalJSON() ([]byte, error) {
	rec := struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}{r.ID, r.Name}
	return json.Marshal(rec)
}

// User is the profile record returned by login and avatar updates.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Roles    []Role `json:"roles"`
}

// UpdateEmailRequest is the payload for PUT /users/profile/email.
type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest is the payload for PUT /users/profile/password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// UpdateAvatarRequest is the payload for POST /users/avatar.
type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required"`
}
