package addresses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
)

// Repository persists customer shipping addresses.
type Repository interface {
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.ShippingAddress, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error)
	Create(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error)
	Update(ctx context.Context, address *models.ShippingAddress) error
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error) {
	var list []models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *repository) Update(ctx context.Context, address *models.ShippingAddress) error {
	return r.db.WithContext(ctx).
		Model(&models.ShippingAddress{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Updates(map[string]any{
			"company":     address.Company,
			"site_name":   address.SiteName,
			"postal_code": address.PostalCode,
			"prefecture":  address.Prefecture,
			"city":        address.City,
			"address1":    address.Address1,
			"address2":    address.Address2,
			"phone":       address.Phone,
			"is_default":  address.IsDefault,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ShippingAddress{})
	return res.RowsAffected, res.Error
}

// ClearDefault drops the default flag from every address the user owns, so a
// new default can be set without violating the partial unique index.
func (r *repository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ShippingAddress{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error
}
