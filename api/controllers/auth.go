package controllers

import (
	"net/http"
	"time"

	"github.com/s50889/ordesite2-sub001/api/middleware"
	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	authsvc "github.com/s50889/ordesite2-sub001/internal/auth"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type userResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Name        *string `json:"name,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LastLoginAt *string `json:"lastLoginAt,omitempty"`
}

func newUserResponse(user *models.UserProfile) userResponse {
	resp := userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Role:        string(user.Role),
		Name:        user.Name,
		CompanyName: user.CompanyName,
		Phone:       user.Phone,
	}
	if user.LastLoginAt != nil {
		formatted := user.LastLoginAt.UTC().Format(time.RFC3339)
		resp.LastLoginAt = &formatted
	}
	return resp
}

// Signup registers a new customer account and opens a session.
func Signup(svc authsvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.SignupInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Signup(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		middleware.SetSessionCookies(w, cfg, session.AccessToken, session.RefreshToken)
		responses.WriteSuccessStatus(w, http.StatusCreated, newUserResponse(session.User))
	}
}

// Login authenticates credentials and opens a session.
func Login(svc authsvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		middleware.SetSessionCookies(w, cfg, session.AccessToken, session.RefreshToken)
		responses.WriteSuccess(w, newUserResponse(session.User))
	}
}

// Logout revokes the server-side session and clears the cookies. It succeeds
// even for callers whose session already expired.
func Logout(svc authsvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.AccessIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		middleware.ClearSessionCookies(w, cfg)
		responses.WriteOK(w)
	}
}

// Me returns the authenticated caller's profile.
func Me(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Me(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newUserResponse(user))
	}
}
