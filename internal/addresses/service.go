package addresses

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

// Input carries the writable fields of a shipping address.
type Input struct {
	Company    string  `json:"company" validate:"required,max=200"`
	SiteName   *string `json:"siteName" validate:"omitempty,max=200"`
	PostalCode string  `json:"postalCode" validate:"required,max=16"`
	Prefecture string  `json:"prefecture" validate:"required,max=50"`
	City       string  `json:"city" validate:"required,max=100"`
	Address1   string  `json:"address1" validate:"required,max=200"`
	Address2   *string `json:"address2" validate:"omitempty,max=200"`
	Phone      string  `json:"phone" validate:"required,max=30"`
	IsDefault  bool    `json:"isDefault"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages a customer's address book.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.ShippingAddress, error)
	Create(ctx context.Context, userID uuid.UUID, input Input) (*models.ShippingAddress, error)
	Update(ctx context.Context, id, userID uuid.UUID, input Input) (*models.ShippingAddress, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

func NewService(repo Repository, tx txRunner) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*models.ShippingAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	address, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipping address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}
	return address, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input Input) (*models.ShippingAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}

	address := &models.ShippingAddress{
		UserID:     userID,
		Company:    input.Company,
		SiteName:   input.SiteName,
		PostalCode: input.PostalCode,
		Prefecture: input.Prefecture,
		City:       input.City,
		Address1:   input.Address1,
		Address2:   input.Address2,
		Phone:      input.Phone,
		IsDefault:  input.IsDefault,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if input.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
			}
		}
		if _, err := repo.Create(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input Input) (*models.ShippingAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}

	var updated *models.ShippingAddress
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		address, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shipping address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
		}

		if input.IsDefault && !address.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
			}
		}

		address.Company = input.Company
		address.SiteName = input.SiteName
		address.PostalCode = input.PostalCode
		address.Prefecture = input.Prefecture
		address.City = input.City
		address.Address1 = input.Address1
		address.Address2 = input.Address2
		address.Phone = input.Phone
		address.IsDefault = input.IsDefault

		if err := repo.Update(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update address")
		}
		updated = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	rows, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shipping address not found")
	}
	return nil
}
