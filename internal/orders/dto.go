package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// CancelInput identifies the order and the actor requesting cancellation.
type CancelInput struct {
	OrderID   uuid.UUID
	ActorID   uuid.UUID
	ActorRole enums.Role
}

// CheckoutItem is one requested order line.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
	Note      *string
}

// CheckoutInput carries everything needed to submit an order.
type CheckoutInput struct {
	CustomerID        uuid.UUID
	ShippingAddressID uuid.UUID
	Items             []CheckoutItem
	Note              *string
	DeliveryDate      *time.Time
}

// StatusUpdateInput captures a staff-driven order status transition.
type StatusUpdateInput struct {
	OrderID   uuid.UUID
	Status    enums.OrderStatus
	ActorID   uuid.UUID
	ActorRole enums.Role
}

// ListFilter narrows order listings.
type ListFilter struct {
	CustomerID *uuid.UUID
	Status     *enums.OrderStatus
}

// OrderList is one page of orders.
type OrderList struct {
	Orders     []models.Order
	NextCursor *string
}
