package session

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

func testUser() api.User {
	return api.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Avatar:   "/uploads/a.jpg",
		Roles: []api.Role{
			{ID: 1, Name: api.RoleUser},
			{ID: 2, Name: api.RoleCreator},
		},
	}
}

func TestLoginRoundTrip(t *testing.T) {
	s := NewStore(slog.Default())

	s.Login("t1", testUser())

	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	if got := s.Token(); got != "t1" {
		t.Errorf("token = %q, want t1", got)
	}
	if u := s.User(); u == nil || u.Username != "alice" {
		t.Errorf("user = %+v, want alice", u)
	}
	if got := s.UnreadCount(); got != 0 {
		t.Errorf("unread after login = %d, want 0", got)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	s := NewStore(slog.Default())
	s.Login("t1", testUser())
	s.SetUnreadCount(5)

	s.Logout()

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if s.Token() != "" || s.User() != nil {
		t.Error("token/user must both be cleared")
	}
	if s.UnreadCount() != 0 {
		t.Error("unread must reset on logout")
	}

	// Idempotent.
	s.Logout()
	if s.IsAuthenticated() {
		t.Error("second logout must stay unauthenticated")
	}
}

func TestAuthenticatedRequiresBothTokenAndUser(t *testing.T) {
	u := testUser()
	cases := []struct {
		name string
		st   State
		want bool
	}{
		{"empty", State{}, false},
		{"token only", State{Token: "t"}, false},
		{"user only", State{User: &u}, false},
		{"both", State{Token: "t", User: &u}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Restore(tc.st, slog.Default())
			if got := s.IsAuthenticated(); got != tc.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tc.want)
			}
			// A rejected partial restore must clear both fields, not one.
			if !tc.want && (s.Token() != "" || s.User() != nil) {
				t.Error("partial restore leaked state")
			}
		})
	}
}

func TestDecrementUnreadSaturates(t *testing.T) {
	s := NewStore(slog.Default())
	s.SetUnreadCount(1)
	s.DecrementUnreadCount()
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("unread = %d, want 0", got)
	}
	s.DecrementUnreadCount()
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("unread after saturating decrement = %d, want 0", got)
	}
	s.SetUnreadCount(-3)
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("negative set clamped to %d, want 0", got)
	}
}

func TestSetAvatar(t *testing.T) {
	s := NewStore(slog.Default())

	// No user loaded: silently ignored.
	s.SetAvatar("/uploads/new.jpg")
	if s.User() != nil {
		t.Fatal("avatar set must not materialize a user")
	}

	s.Login("t1", testUser())
	s.SetAvatar("/uploads/new.jpg")
	if got := s.User().Avatar; got != "/uploads/new.jpg" {
		t.Errorf("avatar = %q, want /uploads/new.jpg", got)
	}
	// The rest of the record is untouched.
	if got := s.User().Username; got != "alice" {
		t.Errorf("username changed to %q", got)
	}
}

func TestHasRoleNormalization(t *testing.T) {
	// Roles arriving as bare strings and as records must both count.
	var u api.User
	raw := `{"id":1,"username":"bob","email":"b@x.com","avatar":"",` +
		`"roles":["ROLE_USER",{"id":3,"name":"ROLE_ADMIN"}]}`
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatal(err)
	}

	s := NewStore(slog.Default())
	s.Login("t", u)

	if !s.IsUser() {
		t.Error("bare string role not recognized")
	}
	if !s.IsAdmin() {
		t.Error("record role not recognized")
	}
	if s.IsCreator() {
		t.Error("unexpected creator role")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewStore(slog.Default())
	s.Login("t9", testUser())
	s.SetUnreadCount(4)

	restored := Restore(s.Snapshot(), slog.Default())

	if !restored.IsAuthenticated() {
		t.Fatal("restored session not authenticated")
	}
	if restored.Token() != "t9" {
		t.Errorf("token = %q, want t9", restored.Token())
	}
	if restored.UnreadCount() != 4 {
		t.Errorf("unread = %d, want 4", restored.UnreadCount())
	}
	if !restored.IsCreator() {
		t.Error("roles lost across snapshot/restore")
	}
}

func TestUserReturnsCopy(t *testing.T) {
	s := NewStore(slog.Default())
	s.Login("t", testUser())

	u := s.User()
	u.Username = "mallory"
	u.Roles[0].Name = "ROLE_HACKED"

	if got := s.User().Username; got != "alice" {
		t.Errorf("store user mutated through copy: %q", got)
	}
	if s.HasRole("ROLE_HACKED") {
		t.Error("role set mutated through copy")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatal(err)
	}

	got, ok := TokenExpiry(signed)
	if !ok {
		t.Fatal("expected expiry from JWT")
	}
	if !got.Equal(exp) {
		t.Errorf("expiry = %v, want %v", got, exp)
	}

	if _, ok := TokenExpiry("opaque-token"); ok {
		t.Error("opaque token must not yield an expiry")
	}
}
