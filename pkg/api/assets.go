package api

import "strings"

// ResolveAssetURL turns a backend-relative asset path (e.g. /uploads/x.jpg)
// into a full URL against the given server origin. Absolute URLs are
// returned unchanged; empty paths stay empty so callers can substitute a
// placeholder.
func ResolveAssetURL(origin, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(origin, "/") + path
}
