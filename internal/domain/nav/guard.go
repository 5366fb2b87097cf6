package nav

// Action is what the guard decided about a navigation.
type Action int

const (
	// ActionAllow commits the navigation.
	ActionAllow Action = iota
	// ActionRedirectHome bounces the navigation to the home view.
	ActionRedirectHome
	// ActionRedirectLogin bounces the navigation to the login view,
	// preserving the intended destination as a redirect-back parameter.
	ActionRedirectLogin
)

// Decision is the guard's verdict, including the notification to surface
// (if any) and the redirect target (for the non-allow actions).
type Decision struct {
	Action     Action
	RedirectTo string
	// NoticeLevel is "warn" or "error"; empty means nothing to surface.
	NoticeLevel string
	Notice      string
}

// SessionView is the read-only session state the guard consults. The
// session store satisfies this.
type SessionView interface {
	IsAuthenticated() bool
	HasRole(name string) bool
}

// Guard notices.
const (
	noticeNoAdmin     = "no admin permission"
	noticePleaseLogin = "please log in"
)

// adminRole is the role required by RequiresAdmin routes.
const adminRole = "ROLE_ADMIN"

// Evaluate is the pure pre-navigation decision function. It is synchronous
// and reads the session state once; the caller must apply the decision
// before committing the navigation. The rules, in precedence order:
//
//  1. authenticated -> public-only target:      redirect home
//  2. authenticated -> admin target, not admin: deny, redirect home
//  3. authenticated -> admin target, admin:     allow
//  4. authenticated -> anything else:           allow
//  5. unauthenticated -> public-only target:    allow
//  6. unauthenticated -> protected target:      redirect login, keeping
//     the intended destination as ?redirect=
func Evaluate(sess SessionView, target Route, targetPath string) Decision {
	if sess.IsAuthenticated() {
		if target.PublicOnly {
			return Decision{Action: ActionRedirectHome, RedirectTo: HomePath}
		}
		if target.RequiresAdmin && !sess.HasRole(adminRole) {
			return Decision{
				Action:      ActionRedirectHome,
				RedirectTo:  HomePath,
				NoticeLevel: "error",
				Notice:      noticeNoAdmin,
			}
		}
		return Decision{Action: ActionAllow}
	}

	if target.PublicOnly {
		return Decision{Action: ActionAllow}
	}
	return Decision{
		Action:      ActionRedirectLogin,
		RedirectTo:  loginRedirectPath(targetPath),
		NoticeLevel: "warn",
		Notice:      noticePleaseLogin,
	}
}

// loginRedirectPath builds the login path carrying the intended
// destination, matching the backend convention /login?redirect=<path>.
func loginRedirectPath(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?redirect=" + from
}
