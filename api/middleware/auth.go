package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/s50889/ordesite2-sub001/api/responses"
	pkgauth "github.com/s50889/ordesite2-sub001/pkg/auth"
	"github.com/s50889/ordesite2-sub001/pkg/auth/session"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

type sessionRotator interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
}

// ResolveSession reads the session cookies and seeds the request context with
// the authenticated identity. It never rejects: requests without a usable
// session continue anonymously and downstream guards decide what to do.
//
// When the access token is expired but the refresh cookie is still valid the
// middleware rotates the session and re-issues both cookies on the response.
func ResolveSession(cfg config.JWTConfig, sessions sessionRotator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, cookie.Value)
			switch {
			case err == nil:
				if claims.ID == "" {
					next.ServeHTTP(w, r)
					return
				}
				if sessions != nil {
					active, serr := sessions.HasSession(r.Context(), claims.ID)
					if serr != nil {
						if logg != nil {
							logg.Warn(r.Context(), "session.check_failed")
						}
						next.ServeHTTP(w, r)
						return
					}
					if !active {
						ClearSessionCookies(w, cfg)
						next.ServeHTTP(w, r)
						return
					}
				}
				next.ServeHTTP(w, r.WithContext(seedIdentity(r.Context(), logg, claims)))

			case errors.Is(err, jwt.ErrTokenExpired):
				refreshed, ok := refreshSession(w, r, cfg, sessions, logg)
				if !ok {
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(seedIdentity(r.Context(), logg, refreshed)))

			default:
				ClearSessionCookies(w, cfg)
				next.ServeHTTP(w, r)
			}
		})
	}
}

// refreshSession rotates an expired session using the refresh cookie, sets
// the replacement cookie pair, and returns the new claims.
func refreshSession(w http.ResponseWriter, r *http.Request, cfg config.JWTConfig, sessions sessionRotator, logg *logger.Logger) (*pkgauth.AccessTokenClaims, bool) {
	if sessions == nil {
		return nil, false
	}

	stale, err := pkgauth.ParseAccessTokenAllowExpired(cfg, mustCookie(r, AccessCookieName))
	if err != nil || stale.ID == "" {
		ClearSessionCookies(w, cfg)
		return nil, false
	}

	refresh := mustCookie(r, RefreshCookieName)
	if refresh == "" {
		ClearSessionCookies(w, cfg)
		return nil, false
	}

	newAccessID, newRefresh, err := sessions.Rotate(r.Context(), stale.ID, refresh)
	if err != nil {
		if !errors.Is(err, session.ErrInvalidRefreshToken) && logg != nil {
			logg.Warn(r.Context(), "session.rotate_failed")
		}
		ClearSessionCookies(w, cfg)
		return nil, false
	}

	access, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: stale.UserID,
		Role:   stale.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		ClearSessionCookies(w, cfg)
		return nil, false
	}

	SetSessionCookies(w, cfg, access, newRefresh)

	refreshed := *stale
	refreshed.ID = newAccessID
	return &refreshed, true
}

func seedIdentity(ctx context.Context, logg *logger.Logger, claims *pkgauth.AccessTokenClaims) context.Context {
	ctx = WithUserID(ctx, claims.UserID.String())
	ctx = WithRole(ctx, claims.Role)
	ctx = WithAccessID(ctx, claims.ID)
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"user_id":    claims.UserID.String(),
			"actor_role": string(claims.Role),
		})
	}
	return ctx
}

func mustCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireAuth rejects requests that did not resolve an authenticated session.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
