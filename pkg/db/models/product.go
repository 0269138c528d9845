package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing. The cart keeps a denormalized
// snapshot of these fields at add time.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU           string              `gorm:"column:sku;not null;uniqueIndex"`
	Name          string              `gorm:"column:name;not null"`
	Description   *string             `gorm:"column:description"`
	CategoryID    *uuid.UUID          `gorm:"column:category_id;type:uuid"`
	Category      *Category           `gorm:"foreignKey:CategoryID"`
	Specs         *string             `gorm:"column:specs"`
	ImageURL      *string             `gorm:"column:image_url"`
	StockQuantity int                 `gorm:"column:stock_quantity;not null;default:0"`
	MOQ           int                 `gorm:"column:moq;not null;default:1"`
	UnitPrice     decimal.NullDecimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Tags          pq.StringArray      `gorm:"column:tags;type:text[]"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
