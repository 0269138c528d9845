package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is a single product position on an order. SKU and name are
// snapshots taken at checkout.
type OrderLine struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	SKU       string     `gorm:"column:sku;not null"`
	Name      string     `gorm:"column:name;not null"`
	Quantity  int        `gorm:"column:quantity;not null"`
	Note      *string    `gorm:"column:note"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
