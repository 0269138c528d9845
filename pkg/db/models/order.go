package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// Order represents a submitted purchase request with its shipping snapshot.
// The shipping_* columns are copied from the chosen address at checkout so
// later address edits do not rewrite order history.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID      uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	AssignedSalesID *uuid.UUID        `gorm:"column:assigned_sales_id;type:uuid"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalQty        int               `gorm:"column:total_qty;not null;default:0"`
	Note            *string           `gorm:"column:note"`

	ShippingName       string  `gorm:"column:shipping_name;not null"`
	ShippingCompany    *string `gorm:"column:shipping_company"`
	ShippingPostalCode string  `gorm:"column:shipping_postal_code;not null"`
	ShippingPrefecture string  `gorm:"column:shipping_prefecture;not null"`
	ShippingCity       string  `gorm:"column:shipping_city;not null"`
	ShippingAddress1   string  `gorm:"column:shipping_address1;not null"`
	ShippingAddress2   *string `gorm:"column:shipping_address2"`
	ShippingPhone      string  `gorm:"column:shipping_phone;not null"`
	ShippingEmail      *string `gorm:"column:shipping_email"`

	RequestedAt  time.Time  `gorm:"column:requested_at;not null"`
	DeliveryDate *time.Time `gorm:"column:delivery_date"`
	CancelledBy  *uuid.UUID `gorm:"column:cancelled_by;type:uuid"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`

	Lines    []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipment *Shipment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
