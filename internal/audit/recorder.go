package audit

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
)

// Recorder appends audit entries inside the caller's transaction so the
// audited change and its trail commit or roll back together.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record writes one audit entry. When tx is nil the recorder falls back to
// its own connection, which is only appropriate for reads-free actions such
// as login events.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error {
	if entry.Action == "" || entry.TableName == "" || entry.RecordID == "" {
		return fmt.Errorf("audit entry missing action, table or record id")
	}
	conn := tx
	if conn == nil {
		conn = r.db
	}
	if err := conn.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
