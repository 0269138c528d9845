package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records who changed what on sensitive tables.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Action    string         `gorm:"column:action;not null"`
	TableName string         `gorm:"column:table_name;not null"`
	RecordID  string         `gorm:"column:record_id;not null"`
	UserID    *uuid.UUID     `gorm:"column:user_id;type:uuid"`
	OldValues map[string]any `gorm:"column:old_values;type:jsonb;serializer:json"`
	NewValues map[string]any `gorm:"column:new_values;type:jsonb;serializer:json"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
