package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	orderssvc "github.com/s50889/ordesite2-sub001/internal/orders"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
	"github.com/s50889/ordesite2-sub001/pkg/types"
)

type orderLineResponse struct {
	ID        string  `json:"id"`
	ProductID *string `json:"productId,omitempty"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Note      *string `json:"note,omitempty"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	Status       string              `json:"status"`
	TotalQty     int                 `json:"totalQty"`
	Note         *string             `json:"note,omitempty"`
	RequestedAt  string              `json:"requestedAt"`
	DeliveryDate *string             `json:"deliveryDate,omitempty"`
	CancelledAt  *string             `json:"cancelledAt,omitempty"`
	Shipping     orderShipping       `json:"shipping"`
	Lines        []orderLineResponse `json:"lines,omitempty"`
}

type orderShipping struct {
	Name       string  `json:"name"`
	Company    *string `json:"company,omitempty"`
	PostalCode string  `json:"postalCode"`
	Prefecture string  `json:"prefecture"`
	City       string  `json:"city"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2,omitempty"`
	Phone      string  `json:"phone"`
}

func newOrderResponse(order *models.Order) orderResponse {
	resp := orderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		TotalQty:    order.TotalQty,
		Note:        order.Note,
		RequestedAt: order.RequestedAt.UTC().Format(time.RFC3339),
		Shipping: orderShipping{
			Name:       order.ShippingName,
			Company:    order.ShippingCompany,
			PostalCode: order.ShippingPostalCode,
			Prefecture: order.ShippingPrefecture,
			City:       order.ShippingCity,
			Address1:   order.ShippingAddress1,
			Address2:   order.ShippingAddress2,
			Phone:      order.ShippingPhone,
		},
	}
	if order.DeliveryDate != nil {
		formatted := order.DeliveryDate.UTC().Format("2006-01-02")
		resp.DeliveryDate = &formatted
	}
	if order.CancelledAt != nil {
		formatted := order.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}
	for _, line := range order.Lines {
		item := orderLineResponse{
			ID:       line.ID.String(),
			SKU:      line.SKU,
			Name:     line.Name,
			Quantity: line.Quantity,
			Note:     line.Note,
		}
		if line.ProductID != nil {
			productID := line.ProductID.String()
			item.ProductID = &productID
		}
		resp.Lines = append(resp.Lines, item)
	}
	return resp
}

type checkoutItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Note      *string   `json:"note" validate:"omitempty,max=500"`
}

type checkoutRequest struct {
	ShippingAddressID uuid.UUID             `json:"shippingAddressId" validate:"required"`
	Items             []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	Note              *string               `json:"note" validate:"omitempty,max=1000"`
	DeliveryDate      *string               `json:"deliveryDate" validate:"omitempty,datetime=2006-01-02"`
}

// CreateOrder submits the checkout and clears nothing; the client owns the
// cart handoff.
func CreateOrder(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orderssvc.CheckoutInput{
			CustomerID:        actorID,
			ShippingAddressID: payload.ShippingAddressID,
			Note:              payload.Note,
		}
		if payload.DeliveryDate != nil {
			parsed, err := time.Parse("2006-01-02", *payload.DeliveryDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery date"))
				return
			}
			input.DeliveryDate = &parsed
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, orderssvc.CheckoutItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Note:      item.Note,
			})
		}

		order, err := svc.Checkout(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// ListOrders returns the caller's order history, newest first.
func ListOrders(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := paginationFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.OrderStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
				return
			}
			status = &parsed
		}

		list, err := svc.List(r.Context(), actorID, role, params, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page := types.Page[orderResponse]{NextCursor: list.NextCursor}
		for i := range list.Orders {
			page.Items = append(page.Items, newOrderResponse(&list.Orders[i]))
		}
		if page.Items == nil {
			page.Items = []orderResponse{}
		}
		responses.WriteSuccess(w, page)
	}
}

// GetOrder returns one order with its lines and shipment.
func GetOrder(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		order, err := svc.GetDetail(r.Context(), orderID, actorID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// CancelOrder cancels an order on behalf of its owner or an admin.
func CancelOrder(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		err = svc.Cancel(r.Context(), orderssvc.CancelInput{
			OrderID:   orderID,
			ActorID:   actorID,
			ActorRole: role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus moves an order through the staff workflow.
func UpdateOrderStatus(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
			return
		}

		err = svc.UpdateStatus(r.Context(), orderssvc.StatusUpdateInput{
			OrderID:   orderID,
			Status:    status,
			ActorID:   actorID,
			ActorRole: role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
