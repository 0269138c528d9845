package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	cartsvc "github.com/s50889/ordesite2-sub001/internal/cart"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type cartResponse struct {
	Items []cartsvc.Item `json:"items"`
}

func newCartResponse(items []cartsvc.Item) cartResponse {
	if items == nil {
		items = []cartsvc.Item{}
	}
	return cartResponse{Items: items}
}

// GetCart returns the caller's cart, guest or authenticated.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Load(r.Context(), cartIdentityFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
	Note      *string   `json:"note" validate:"omitempty,max=500"`
}

// AddCartItem adds a product to the cart or bumps the existing line.
func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.AddToCart(r.Context(), cartIdentityFromRequest(r), cartsvc.AddInput{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Note:      payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

type updateCartItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,min=1"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
}

// UpdateCartItem changes the quantity or note on one cart line.
func UpdateCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := cartIdentityFromRequest(r)
		var (
			items []cartsvc.Item
			err   error
		)
		if payload.Quantity != nil {
			items, err = svc.UpdateQuantity(r.Context(), identity, itemID, *payload.Quantity)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.Note != nil {
			items, err = svc.UpdateNote(r.Context(), identity, itemID, payload.Note)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.Quantity == nil && payload.Note == nil {
			items, err = svc.Load(r.Context(), identity)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// RemoveCartItem deletes one line; removing an absent line is a no-op.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.RemoveItem(r.Context(), cartIdentityFromRequest(r), chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// ClearCart empties the caller's cart.
func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearCart(r.Context(), cartIdentityFromRequest(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(nil))
	}
}
