package session

import (
	"log/slog"
	"sync"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// Store is the process-wide session state. It is deliberately free of I/O:
// persistence happens explicitly at the two session transitions (login,
// logout) by whoever owns the durable store, via Snapshot.
type Store struct {
	mu     sync.RWMutex
	token  string
	user   *api.User
	roles  map[string]struct{}
	unread int
	logger *slog.Logger
}

// NewStore creates an empty, unauthenticated session store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		roles:  map[string]struct{}{},
		logger: logger,
	}
}

// Restore builds a store from a persisted snapshot. A snapshot violating
// the token/user invariant (partial write, manual edit) is discarded
// entirely rather than half-applied.
func Restore(st State, logger *slog.Logger) *Store {
	s := NewStore(logger)
	if !st.valid() {
		logger.Warn("discarding inconsistent persisted session")
		return s
	}
	if st.Token == "" {
		return s
	}
	u := *st.User
	s.token = st.Token
	s.user = &u
	s.roles = normalizeRoles(u.Roles)
	s.unread = st.UnreadCount
	if s.unread < 0 {
		s.unread = 0
	}
	return s
}

// Login installs a fresh session: token and user are set together and the
// unread counter resets to zero.
func (s *Store) Login(token string, user api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.token = token
	s.user = &u
	s.roles = normalizeRoles(u.Roles)
	s.unread = 0
	s.logger.Debug("session established", "user_id", u.ID, "username", u.Username)
}

// Logout clears the session. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.roles = map[string]struct{}{}
	s.unread = 0
}

// IsAuthenticated reports whether both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, or nil when unauthenticated.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Roles = append([]api.Role(nil), s.user.Roles...)
	return &u
}

// HasRole reports membership in the normalized role-name set.
func (s *Store) HasRole(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[name]
	return ok
}

// IsUser reports the ROLE_USER tier.
func (s *Store) IsUser() bool { return s.HasRole(api.RoleUser) }

// IsCreator reports the ROLE_CREATOR tier.
func (s *Store) IsCreator() bool { return s.HasRole(api.RoleCreator) }

// IsAdmin reports the ROLE_ADMIN tier.
func (s *Store) IsAdmin() bool { return s.HasRole(api.RoleAdmin) }

// SetAvatar updates the loaded profile's avatar in place. No-op when
// unauthenticated; avatar changes never replace the whole user record.
func (s *Store) SetAvatar(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user.Avatar = url
}

// SetUnreadCount sets the unread-notification counter, clamped at zero.
func (s *Store) SetUnreadCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.unread = n
}

// DecrementUnreadCount is a saturating decrement: the counter never goes
// below zero.
func (s *Store) DecrementUnreadCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unread > 0 {
		s.unread--
	}
}

// UnreadCount returns the current unread-notification counter.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Snapshot returns the persistable view of the session.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Token: s.token, UnreadCount: s.unread}
	if s.user != nil {
		u := *s.user
		u.Roles = append([]api.Role(nil), s.user.Roles...)
		st.User = &u
	}
	return st
}

// normalizeRoles flattens role entries into a name set. Entries arrive
// already normalized by api.Role's decoder, whether the backend sent bare
// strings or {id, name} records.
func normalizeRoles(roles []api.Role) map[string]struct{} {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if r.Name != "" {
			set[r.Name] = struct{}{}
		}
	}
	return set
}
