package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

const recentOrderCount = 5

// Summary is everything the landing page renders in one call.
type Summary struct {
	RecentOrders       []models.Order        `json:"recentOrders"`
	PendingOrderCount  int64                 `json:"pendingOrderCount"`
	ActiveProductCount int64                 `json:"activeProductCount"`
	Announcements      []models.Announcement `json:"announcements"`
}

type orderReader interface {
	ListRecent(ctx context.Context, customerID *uuid.UUID, limit int) ([]models.Order, error)
	CountByStatus(ctx context.Context, customerID *uuid.UUID, status enums.OrderStatus) (int64, error)
}

type productCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type announcementReader interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
}

// Service aggregates the dashboard summary.
type Service interface {
	Summarize(ctx context.Context, userID uuid.UUID, role enums.Role) (*Summary, error)
}

type service struct {
	orders        orderReader
	products      productCounter
	announcements announcementReader
}

func NewService(orders orderReader, products productCounter, announcements announcementReader) Service {
	return &service{orders: orders, products: products, announcements: announcements}
}

// Summarize builds the landing page payload. Customers see their own recent
// orders and pending count; staff see portal-wide figures.
func (s *service) Summarize(ctx context.Context, userID uuid.UUID, role enums.Role) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}

	var scope *uuid.UUID
	if !role.IsStaff() {
		scope = &userID
	}

	recent, err := s.orders.ListRecent(ctx, scope, recentOrderCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent orders")
	}
	pending, err := s.orders.CountByStatus(ctx, scope, enums.OrderStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending orders")
	}
	productCount, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	announcements, err := s.announcements.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list announcements")
	}

	return &Summary{
		RecentOrders:       recent,
		PendingOrderCount:  pending,
		ActiveProductCount: productCount,
		Announcements:      announcements,
	}, nil
}
