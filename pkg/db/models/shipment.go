package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment tracks the delivery record attached to an order.
type Shipment struct {
	ID                    uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID               uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	CurrentStatusID       *int            `gorm:"column:current_status_id"`
	CurrentStatus         *ShippingStatus `gorm:"foreignKey:CurrentStatusID"`
	EstimatedDeliveryDate *time.Time      `gorm:"column:estimated_delivery_date"`
	ActualDeliveryDate    *time.Time      `gorm:"column:actual_delivery_date"`
	Notes                 *string         `gorm:"column:notes"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
