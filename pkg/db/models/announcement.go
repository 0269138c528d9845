package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

// Announcement is a staff-authored portal notice.
type Announcement struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string                 `gorm:"column:title;not null"`
	Content   string                 `gorm:"column:content;not null"`
	Type      enums.AnnouncementType `gorm:"column:type;type:text;not null;default:'info'"`
	Priority  int                    `gorm:"column:priority;not null;default:0"`
	IsActive  bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedBy *uuid.UUID             `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
