package models

import "time"

// ShippingStatus is the lookup table of shipment progress steps.
type ShippingStatus struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	StatusCode  string    `gorm:"column:status_code;not null;uniqueIndex"`
	StatusName  string    `gorm:"column:status_name;not null"`
	Description *string   `gorm:"column:description"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ShippingStatus) TableName() string {
	return "shipping_statuses"
}
