package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	shipmentssvc "github.com/s50889/ordesite2-sub001/internal/shipments"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type shipmentResponse struct {
	ID                    string  `json:"id"`
	OrderID               string  `json:"orderId"`
	StatusCode            *string `json:"statusCode,omitempty"`
	StatusName            *string `json:"statusName,omitempty"`
	EstimatedDeliveryDate *string `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    *string `json:"actualDeliveryDate,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

func newShipmentResponse(shipment *models.Shipment) shipmentResponse {
	resp := shipmentResponse{
		ID:      shipment.ID.String(),
		OrderID: shipment.OrderID.String(),
		Notes:   shipment.Notes,
	}
	if shipment.CurrentStatus != nil {
		resp.StatusCode = &shipment.CurrentStatus.StatusCode
		resp.StatusName = &shipment.CurrentStatus.StatusName
	}
	if shipment.EstimatedDeliveryDate != nil {
		formatted := shipment.EstimatedDeliveryDate.UTC().Format("2006-01-02")
		resp.EstimatedDeliveryDate = &formatted
	}
	if shipment.ActualDeliveryDate != nil {
		formatted := shipment.ActualDeliveryDate.UTC().Format("2006-01-02")
		resp.ActualDeliveryDate = &formatted
	}
	return resp
}

// GetOrderShipment returns delivery progress for one order.
func GetOrderShipment(svc shipmentssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipment, err := svc.GetForOrder(r.Context(), orderID, actorID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newShipmentResponse(shipment))
	}
}

type shipmentUpdateRequest struct {
	StatusCode            string  `json:"statusCode" validate:"required"`
	EstimatedDeliveryDate *string `json:"estimatedDeliveryDate" validate:"omitempty,datetime=2006-01-02"`
	ActualDeliveryDate    *string `json:"actualDeliveryDate" validate:"omitempty,datetime=2006-01-02"`
	Notes                 *string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateOrderShipment records staff shipment progress for an order.
func UpdateOrderShipment(svc shipmentssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shipmentUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shipmentssvc.UpdateInput{
			OrderID:    orderID,
			StatusCode: payload.StatusCode,
			Notes:      payload.Notes,
			ActorID:    actorID,
			ActorRole:  role,
		}
		if payload.EstimatedDeliveryDate != nil {
			parsed, err := time.Parse("2006-01-02", *payload.EstimatedDeliveryDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid estimated delivery date"))
				return
			}
			input.EstimatedDeliveryDate = &parsed
		}
		if payload.ActualDeliveryDate != nil {
			parsed, err := time.Parse("2006-01-02", *payload.ActualDeliveryDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid actual delivery date"))
				return
			}
			input.ActualDeliveryDate = &parsed
		}

		shipment, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newShipmentResponse(shipment))
	}
}

type shippingStatusResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ListShippingStatuses returns the lookup of shipment progress steps.
func ListShippingStatuses(svc shipmentssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := svc.ListStatuses(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]shippingStatusResponse, 0, len(statuses))
		for _, status := range statuses {
			out = append(out, shippingStatusResponse{
				Code:      status.StatusCode,
				Name:      status.StatusName,
				SortOrder: status.SortOrder,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
