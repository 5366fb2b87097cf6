// Package session holds the client's authenticated identity: the bearer
// token, the user profile, and the unread-notification counter.
//
// The core invariant is that token and user are set and cleared together;
// no observable state ever has one without the other. All mutation goes
// through the Store, which is safe for concurrent use by in-flight requests.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// State is the serializable snapshot of the session, persisted across
// process restarts under a fixed namespace.
type State struct {
	Token       string    `json:"token"`
	User        *api.User `json:"user"`
	UnreadCount int       `json:"unread_count"`
}

// valid reports whether the snapshot satisfies the session invariant:
// token and user both present, or both absent.
func (s State) valid() bool {
	return (s.Token == "") == (s.User == nil)
}

// TokenExpiry extracts the exp claim from a backend-issued JWT without
// verifying the signature. The client has no key material; this is display
// information only, never an authorization decision. Returns false for
// opaque or claimless tokens.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
