package nav

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/sparkhub/sparkhub-cli/internal/notify"
)

// fakeSession is a minimal SessionView for guard tests.
type fakeSession struct {
	authed bool
	roles  map[string]bool
}

func (f *fakeSession) IsAuthenticated() bool    { return f.authed }
func (f *fakeSession) HasRole(name string) bool { return f.roles[name] }

func authedUser(roles ...string) *fakeSession {
	m := make(map[string]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return &fakeSession{authed: true, roles: m}
}

func anonymous() *fakeSession {
	return &fakeSession{}
}

func TestEvaluateDecisionTable(t *testing.T) {
	cases := []struct {
		name       string
		sess       SessionView
		path       string
		wantAction Action
		wantTo     string
		wantNotice string
	}{
		{
			name:       "authenticated to login bounces home",
			sess:       authedUser("ROLE_USER"),
			path:       "/login",
			wantAction: ActionRedirectHome,
			wantTo:     HomePath,
		},
		{
			name:       "authenticated to register bounces home",
			sess:       authedUser("ROLE_USER"),
			path:       "/register",
			wantAction: ActionRedirectHome,
			wantTo:     HomePath,
		},
		{
			name:       "non-admin to admin view denied",
			sess:       authedUser("ROLE_USER", "ROLE_CREATOR"),
			path:       "/admin/projects",
			wantAction: ActionRedirectHome,
			wantTo:     HomePath,
			wantNotice: "no admin permission",
		},
		{
			name:       "admin to admin view allowed",
			sess:       authedUser("ROLE_USER", "ROLE_ADMIN"),
			path:       "/admin/users",
			wantAction: ActionAllow,
		},
		{
			name:       "authenticated to ordinary view allowed",
			sess:       authedUser("ROLE_USER"),
			path:       "/profile",
			wantAction: ActionAllow,
		},
		{
			name:       "anonymous to login allowed",
			sess:       anonymous(),
			path:       "/login",
			wantAction: ActionAllow,
		},
		{
			name:       "anonymous to protected view redirects to login",
			sess:       anonymous(),
			path:       "/profile",
			wantAction: ActionRedirectLogin,
			wantTo:     "/login?redirect=/profile",
			wantNotice: "please log in",
		},
		{
			name:       "anonymous to admin view redirects to login first",
			sess:       anonymous(),
			path:       "/admin/projects",
			wantAction: ActionRedirectLogin,
			wantTo:     "/login?redirect=/admin/projects",
			wantNotice: "please log in",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			route, ok := Resolve(tc.path)
			if !ok {
				t.Fatalf("route %q not found", tc.path)
			}
			d := Evaluate(tc.sess, route, tc.path)
			if d.Action != tc.wantAction {
				t.Errorf("action = %v, want %v", d.Action, tc.wantAction)
			}
			if d.RedirectTo != tc.wantTo {
				t.Errorf("redirect = %q, want %q", d.RedirectTo, tc.wantTo)
			}
			if d.Notice != tc.wantNotice {
				t.Errorf("notice = %q, want %q", d.Notice, tc.wantNotice)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		path     string
		wantName string
		wantOK   bool
	}{
		{"/", "home", true},
		{"/home", "home", true},
		{"/project/42", "projectDetail", true},
		{"/project/edit/42", "projectEdit", true},
		{"/admin/projects", "adminProjects", true},
		{"/login?redirect=/profile", "login", true},
		{"/nope", "", false},
		{"/project", "", false},
	}
	for _, tc := range cases {
		route, ok := Resolve(tc.path)
		if ok != tc.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tc.path, ok, tc.wantOK)
			continue
		}
		if ok && route.Name != tc.wantName {
			t.Errorf("Resolve(%q) = %q, want %q", tc.path, route.Name, tc.wantName)
		}
	}
}

func TestNavigatorDenialSideEffects(t *testing.T) {
	rec := notify.NewRecorder()
	n := NewNavigator(authedUser("ROLE_USER"), rec, slog.Default())

	_, err := n.Navigate("/admin/projects")
	if !errors.Is(err, ErrNavigationDenied) {
		t.Fatalf("expected navigation denial, got %v", err)
	}
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatal("expected *DeniedError")
	}
	if denied.RedirectTo != HomePath {
		t.Errorf("redirected to %q, want %q", denied.RedirectTo, HomePath)
	}
	if n.Current() != HomePath {
		t.Errorf("current = %q, want %q", n.Current(), HomePath)
	}

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Level != "error" || entries[0].Message != "no admin permission" {
		t.Errorf("notifications = %+v, want one error 'no admin permission'", entries)
	}
}

func TestNavigatorUnauthenticatedRedirect(t *testing.T) {
	rec := notify.NewRecorder()
	n := NewNavigator(anonymous(), rec, slog.Default())

	_, err := n.Navigate("/profile")
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected denial, got %v", err)
	}
	if denied.RedirectTo != "/login?redirect=/profile" {
		t.Errorf("redirect = %q, want /login?redirect=/profile", denied.RedirectTo)
	}
	if got := rec.Entries(); len(got) != 1 || got[0].Level != "warn" {
		t.Errorf("expected one warn notification, got %+v", got)
	}
}

func TestNavigatorAllowCommits(t *testing.T) {
	n := NewNavigator(authedUser("ROLE_USER"), notify.Discard{}, slog.Default())

	route, err := n.Navigate("/project/7")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if route.Name != "projectDetail" {
		t.Errorf("route = %q, want projectDetail", route.Name)
	}
	if n.Current() != "/project/7" {
		t.Errorf("current = %q, want /project/7", n.Current())
	}
}

func TestForceLoginCarriesCurrentPath(t *testing.T) {
	n := NewNavigator(authedUser("ROLE_USER"), notify.Discard{}, slog.Default())
	if _, err := n.Navigate("/notifications"); err != nil {
		t.Fatal(err)
	}

	to := n.ForceLogin()
	if to != "/login?redirect=/notifications" {
		t.Errorf("ForceLogin = %q, want /login?redirect=/notifications", to)
	}
	if n.Current() != to {
		t.Errorf("current = %q, want %q", n.Current(), to)
	}
}
