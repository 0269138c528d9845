package announcements

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
)

// Repository persists portal announcements.
type Repository interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
	ListAll(ctx context.Context) ([]models.Announcement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var list []models.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("priority DESC, created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Announcement, error) {
	var list []models.Announcement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *repository) Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

func (r *repository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", announcement.ID).
		Updates(map[string]any{
			"title":     announcement.Title,
			"content":   announcement.Content,
			"type":      announcement.Type,
			"priority":  announcement.Priority,
			"is_active": announcement.IsActive,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
