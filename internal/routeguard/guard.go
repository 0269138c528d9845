package routeguard

import (
	"net/url"
	"strings"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// Protected page prefixes. Requests under these require a session.
var protectedPrefixes = []string{
	"/dashboard",
	"/cart",
	"/order-confirm",
	"/orders",
	"/admin",
	"/sales",
}

// Auth-only pages bounce already-authenticated users back home.
var authPages = []string{
	"/login",
	"/signup",
}

// Paths the guard never evaluates.
var skipPrefixes = []string{
	"/api",
	"/_next/static",
	"/_next/image",
	"/favicon.ico",
}

// Session is the resolved identity the guard evaluates against. RoleKnown is
// false when the role lookup failed; the guard then fails closed on
// admin/sales paths without blocking anything else.
type Session struct {
	Authenticated bool
	Role          enums.Role
	RoleKnown     bool
}

// Action enumerates the possible guard outcomes.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirectLogin
	ActionRedirectHome
	ActionRedirectDashboard
)

// Decision is the guard verdict. Location is set for redirect actions.
type Decision struct {
	Action   Action
	Location string
}

// Skip reports whether the path is excluded from evaluation entirely.
func Skip(path string) bool {
	for _, prefix := range skipPrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Evaluate applies the access rules in order and returns a verdict. It is a
// pure function: cookie propagation happens in the HTTP adapter, on every
// response including Allow.
func Evaluate(path string, sess Session) Decision {
	if matchesAny(path, protectedPrefixes) && !sess.Authenticated {
		return Decision{
			Action:   ActionRedirectLogin,
			Location: "/login?redirectTo=" + url.QueryEscape(path),
		}
	}

	if matchesAny(path, authPages) && sess.Authenticated {
		return Decision{Action: ActionRedirectHome, Location: "/"}
	}

	if sess.Authenticated {
		role := sess.Role
		if !sess.RoleKnown {
			role = ""
		}
		if hasPathPrefix(path, "/admin") && role != enums.RoleAdmin {
			return Decision{Action: ActionRedirectDashboard, Location: "/dashboard"}
		}
		if hasPathPrefix(path, "/sales") && role != enums.RoleSales && role != enums.RoleAdmin {
			return Decision{Action: ActionRedirectDashboard, Location: "/dashboard"}
		}
	}

	return Decision{Action: ActionAllow}
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
