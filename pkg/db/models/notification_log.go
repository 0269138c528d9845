package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// NotificationLog records every outbound order email attempt.
type NotificationLog struct {
	ID               uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	NotificationType string                   `gorm:"column:notification_type;not null"`
	OrderID          *uuid.UUID               `gorm:"column:order_id;type:uuid"`
	RecipientEmail   string                   `gorm:"column:recipient_email;not null"`
	Subject          string                   `gorm:"column:subject;not null"`
	Body             string                   `gorm:"column:body;not null"`
	Status           enums.NotificationStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	ErrorMessage     *string                  `gorm:"column:error_message"`
	SentAt           *time.Time               `gorm:"column:sent_at"`
	CreatedAt        time.Time                `gorm:"column:created_at;autoCreateTime"`
}
