package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLines(ctx context.Context, lines []models.OrderLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*OrderList, error)
	ListRecent(ctx context.Context, customerID *uuid.UUID, limit int) ([]models.Order, error)
	CountByStatus(ctx context.Context, customerID *uuid.UUID, status enums.OrderStatus) (int64, error)
	CancelIfCancellable(ctx context.Context, orderID, actorID uuid.UUID, at time.Time) (int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}
