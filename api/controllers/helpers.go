package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/api/middleware"
	"github.com/s50889/ordesite2-sub001/api/validators"
	"github.com/s50889/ordesite2-sub001/internal/cart"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

// actorFromRequest returns the authenticated caller's id and role.
func actorFromRequest(r *http.Request) (uuid.UUID, enums.Role, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthenticated, "authentication required")
	}
	actorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthenticated, err, "invalid user identity")
	}
	return actorID, middleware.RoleFromContext(r.Context()), nil
}

// cartIdentityFromRequest maps the session to a cart bucket owner. Anonymous
// visitors share the guest bucket.
func cartIdentityFromRequest(r *http.Request) string {
	if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
		return raw
	}
	return cart.GuestIdentity
}

func paginationFromRequest(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}, nil
}
