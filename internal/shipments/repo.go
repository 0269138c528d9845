package shipments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
)

// Repository persists shipments and the shipping status lookup table.
type Repository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Shipment, error)
	Upsert(ctx context.Context, shipment *models.Shipment) error
	FindStatusByCode(ctx context.Context, code string) (*models.ShippingStatus, error)
	ListStatuses(ctx context.Context) ([]models.ShippingStatus, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).
		Preload("CurrentStatus").
		First(&shipment, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// Upsert creates the order's shipment row on first status update and saves
// it in place afterwards. Orders hold at most one shipment.
func (r *repository) Upsert(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

func (r *repository) FindStatusByCode(ctx context.Context, code string) (*models.ShippingStatus, error) {
	var status models.ShippingStatus
	err := r.db.WithContext(ctx).
		First(&status, "status_code = ? AND is_active", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *repository) ListStatuses(ctx context.Context) ([]models.ShippingStatus, error) {
	var statuses []models.ShippingStatus
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("sort_order").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
