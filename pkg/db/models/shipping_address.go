package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is a customer's saved delivery destination.
type ShippingAddress struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Company    string    `gorm:"column:company;not null"`
	SiteName   *string   `gorm:"column:site_name"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	Prefecture string    `gorm:"column:prefecture;not null"`
	City       string    `gorm:"column:city;not null"`
	Address1   string    `gorm:"column:address1;not null"`
	Address2   *string   `gorm:"column:address2"`
	Phone      string    `gorm:"column:phone;not null"`
	IsDefault  bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}
