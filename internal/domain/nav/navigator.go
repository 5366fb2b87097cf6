package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sparkhub/sparkhub-cli/internal/notify"
)

// ErrNavigationDenied matches any guard refusal via errors.Is().
var ErrNavigationDenied = errors.New("navigation denied")

// DeniedError reports a navigation the guard refused. It is surfaced once
// as a notification by the Navigator and then returned so the caller can
// react (e.g. stop rendering); it is never fatal.
type DeniedError struct {
	// To is the path the caller asked for.
	To string
	// RedirectTo is where the navigation landed instead.
	RedirectTo string
	// Reason is the surfaced notice text.
	Reason string
}

// Error describes the denial.
func (e *DeniedError) Error() string {
	return fmt.Sprintf("navigation to %s denied: %s", e.To, e.Reason)
}

// Is supports errors.Is(err, ErrNavigationDenied).
func (e *DeniedError) Is(target error) bool {
	return target == ErrNavigationDenied
}

// Navigator tracks the current view and runs every transition through the
// guard before committing it. The guard check completes synchronously
// before the target route is handed back, so a protected view can never
// start rendering while its check is pending.
type Navigator struct {
	mu       sync.Mutex
	current  string
	sess     SessionView
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewNavigator creates a Navigator positioned at home.
func NewNavigator(sess SessionView, notifier notify.Notifier, logger *slog.Logger) *Navigator {
	return &Navigator{
		current:  HomePath,
		sess:     sess,
		notifier: notifier,
		logger:   logger,
	}
}

// Current returns the currently-active path.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate runs the guard for path and applies its decision. On allow it
// commits the transition and returns the resolved route. On refusal it
// surfaces the guard's notice, moves to the redirect target, and returns a
// *DeniedError — the caller must not render the requested view.
func (n *Navigator) Navigate(path string) (Route, error) {
	route, ok := Resolve(path)
	if !ok {
		return Route{}, fmt.Errorf("no route matches %q", path)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	d := Evaluate(n.sess, route, path)
	switch d.NoticeLevel {
	case "warn":
		n.notifier.Warn(d.Notice)
	case "error":
		n.notifier.Error(d.Notice)
	}

	switch d.Action {
	case ActionAllow:
		n.current = path
		n.logger.Debug("navigation allowed", "path", path, "route", route.Name)
		return route, nil
	default:
		n.current = d.RedirectTo
		n.logger.Debug("navigation denied",
			"path", path, "redirect_to", d.RedirectTo, "reason", d.Notice)
		return route, &DeniedError{To: path, RedirectTo: d.RedirectTo, Reason: d.Notice}
	}
}

// ForceLogin redirects to the login view carrying the currently-active
// path as the redirect-back parameter. The request pipeline calls this
// after the backend declares the session stale; no guard evaluation runs
// because the session has already been cleared.
func (n *Navigator) ForceLogin() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	to := loginRedirectPath(n.current)
	n.logger.Debug("forced to login", "from", n.current, "to", to)
	n.current = to
	return to
}
