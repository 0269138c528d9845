package shipments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

// UpdateInput is a staff shipment progress update.
type UpdateInput struct {
	OrderID               uuid.UUID
	StatusCode            string `json:"statusCode" validate:"required"`
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time
	Notes                 *string
	ActorID               uuid.UUID
	ActorRole             enums.Role
}

type orderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// Service manages shipment progress for orders.
type Service interface {
	GetForOrder(ctx context.Context, orderID, actorID uuid.UUID, role enums.Role) (*models.Shipment, error)
	Update(ctx context.Context, input UpdateInput) (*models.Shipment, error)
	ListStatuses(ctx context.Context) ([]models.ShippingStatus, error)
}

type service struct {
	repo   Repository
	orders orderReader
}

func NewService(repo Repository, orders orderReader) Service {
	return &service{repo: repo, orders: orders}
}

// GetForOrder returns the shipment for an order the caller may see.
// Customers get a not-found for orders that are not theirs.
func (s *service) GetForOrder(ctx context.Context, orderID, actorID uuid.UUID, role enums.Role) (*models.Shipment, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if !role.IsStaff() && order.CustomerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	shipment, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipment")
	}
	if shipment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no shipment for this order")
	}
	return shipment, nil
}

// Update records shipment progress. Staff only; the status code must exist
// in the shipping_statuses lookup.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Shipment, error) {
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	if !input.ActorRole.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	status, err := s.repo.FindStatusByCode(ctx, input.StatusCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipping status")
	}
	if status == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping status code")
	}

	shipment, err := s.repo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipment")
	}
	if shipment == nil {
		shipment = &models.Shipment{OrderID: order.ID}
	}

	statusID := status.ID
	shipment.CurrentStatusID = &statusID
	shipment.CurrentStatus = status
	if input.EstimatedDeliveryDate != nil {
		shipment.EstimatedDeliveryDate = input.EstimatedDeliveryDate
	}
	if input.ActualDeliveryDate != nil {
		shipment.ActualDeliveryDate = input.ActualDeliveryDate
	}
	if input.Notes != nil {
		shipment.Notes = input.Notes
	}

	if err := s.repo.Upsert(ctx, shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save shipment")
	}
	return shipment, nil
}

func (s *service) ListStatuses(ctx context.Context) ([]models.ShippingStatus, error) {
	statuses, err := s.repo.ListStatuses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shipping statuses")
	}
	return statuses, nil
}
