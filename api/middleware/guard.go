package middleware

import (
	"net/http"

	"github.com/s50889/ordesite2-sub001/internal/routeguard"
)

// Guard applies the page-route access rules. It expects ResolveSession to
// have run first so the identity (and any rotated cookies) are already on
// the request and response.
func Guard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if routeguard.Skip(path) {
				next.ServeHTTP(w, r)
				return
			}

			sess := routeguard.Session{}
			if UserIDFromContext(r.Context()) != "" {
				sess.Authenticated = true
				if role := RoleFromContext(r.Context()); role.IsValid() {
					sess.Role = role
					sess.RoleKnown = true
				}
			}

			decision := routeguard.Evaluate(path, sess)
			if decision.Action == routeguard.ActionAllow {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, decision.Location, http.StatusFound)
		})
	}
}
