package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	addressessvc "github.com/s50889/ordesite2-sub001/internal/addresses"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type addressResponse struct {
	ID         string  `json:"id"`
	Company    string  `json:"company"`
	SiteName   *string `json:"siteName,omitempty"`
	PostalCode string  `json:"postalCode"`
	Prefecture string  `json:"prefecture"`
	City       string  `json:"city"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2,omitempty"`
	Phone      string  `json:"phone"`
	IsDefault  bool    `json:"isDefault"`
}

func newAddressResponse(address *models.ShippingAddress) addressResponse {
	return addressResponse{
		ID:         address.ID.String(),
		Company:    address.Company,
		SiteName:   address.SiteName,
		PostalCode: address.PostalCode,
		Prefecture: address.Prefecture,
		City:       address.City,
		Address1:   address.Address1,
		Address2:   address.Address2,
		Phone:      address.Phone,
		IsDefault:  address.IsDefault,
	}
}

// ListAddresses returns the caller's address book, default first.
func ListAddresses(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]addressResponse, 0, len(list))
		for i := range list {
			out = append(out, newAddressResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// CreateAddress saves a new delivery destination.
func CreateAddress(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addressessvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		address, err := svc.Create(r.Context(), actorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAddressResponse(address))
	}
}

// UpdateAddress edits one of the caller's addresses.
func UpdateAddress(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := validators.ParsePathUUID(chi.URLParam(r, "addressID"), "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addressessvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		address, err := svc.Update(r.Context(), addressID, actorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddressResponse(address))
	}
}

// DeleteAddress removes one of the caller's addresses.
func DeleteAddress(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := validators.ParsePathUUID(chi.URLParam(r, "addressID"), "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), addressID, actorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
