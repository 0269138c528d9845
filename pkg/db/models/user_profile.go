package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// UserProfile represents the canonical identity entity.
type UserProfile struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;type:text;not null;default:'customer'"`
	Name         *string    `gorm:"column:name"`
	CompanyName  *string    `gorm:"column:company_name"`
	Phone        *string    `gorm:"column:phone"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (UserProfile) TableName() string {
	return "user_profiles"
}
