// Package nav implements client-side navigation: the route table, the
// pre-navigation authorization guard, and the Navigator that applies guard
// decisions before any view renders.
package nav

import "strings"

// Route is one navigable view.
type Route struct {
	// Path is the route pattern; segments starting with ':' are parameters.
	Path string
	// Name is the stable route identifier.
	Name string
	// Title is the human-readable view title.
	Title string
	// RequiresAdmin marks views reserved for ROLE_ADMIN.
	RequiresAdmin bool
	// PublicOnly marks views that only make sense logged out
	// (login, register); authenticated users are bounced home.
	PublicOnly bool
}

// HomePath is where denied or already-authenticated navigations land.
const HomePath = "/home"

// LoginPath is where unauthenticated navigations to protected views land.
const LoginPath = "/login"

// routes is the full route table, mirroring the site map.
var routes = []Route{
	{Path: "/home", Name: "home", Title: "Home"},
	{Path: "/profile", Name: "profile", Title: "Profile"},
	{Path: "/create", Name: "create", Title: "Start a Project"},
	{Path: "/my-projects", Name: "myProjects", Title: "My Projects"},
	{Path: "/my-backings", Name: "myBackings", Title: "My Backings"},
	{Path: "/my-favorites", Name: "myFavorites", Title: "My Favorites"},
	{Path: "/project/:id", Name: "projectDetail", Title: "Project Detail"},
	{Path: "/project/edit/:id", Name: "projectEdit", Title: "Edit Project"},
	{Path: "/notifications", Name: "notifications", Title: "Notifications"},
	{Path: "/admin/projects", Name: "adminProjects", Title: "Project Review", RequiresAdmin: true},
	{Path: "/admin/users", Name: "adminUsers", Title: "User Management", RequiresAdmin: true},
	{Path: "/login", Name: "login", Title: "Log In", PublicOnly: true},
	{Path: "/register", Name: "register", Title: "Register", PublicOnly: true},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Resolve matches a concrete path against the route table. "/" resolves to
// home. Parameter segments match any non-empty segment.
func Resolve(path string) (Route, bool) {
	if path == "/" || path == "" {
		path = HomePath
	}
	// Strip any query portion; matching is on the path alone.
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := splitPath(path)
	for _, r := range routes {
		if matchSegments(splitPath(r.Path), segs) {
			return r, true
		}
	}
	return Route{}, false
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
