package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

// UpsertInput carries the writable catalog fields for staff edits.
type UpsertInput struct {
	SKU           string   `json:"sku" validate:"required,max=64"`
	Name          string   `json:"name" validate:"required,max=200"`
	Description   *string  `json:"description"`
	CategoryID    *string  `json:"categoryId" validate:"omitempty,uuid"`
	Specs         *string  `json:"specs"`
	ImageURL      *string  `json:"imageUrl" validate:"omitempty,url"`
	StockQuantity int      `json:"stockQuantity" validate:"min=0"`
	MOQ           int      `json:"moq" validate:"min=1"`
	UnitPrice     *string  `json:"unitPrice"`
	Tags          []string `json:"tags"`
	IsActive      bool     `json:"isActive"`
}

// Service exposes the catalog to the portal.
type Service interface {
	List(ctx context.Context, role enums.Role, filter Filter, params pagination.Params) (*ProductList, error)
	Get(ctx context.Context, id uuid.UUID, role enums.Role) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, input UpsertInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns a catalog page. Customers only ever see active products; the
// admin catalog view includes everything.
func (s *service) List(ctx context.Context, role enums.Role, filter Filter, params pagination.Params) (*ProductList, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	if role != enums.RoleAdmin {
		filter.ActiveOnly = true
	}
	list, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, role enums.Role) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product == nil || (!product.IsActive && role != enums.RoleAdmin) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return categories, nil
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Product, error) {
	product := &models.Product{}
	if err := applyInput(product, input); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := applyInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return product, nil
}

func applyInput(product *models.Product, input UpsertInput) error {
	product.SKU = input.SKU
	product.Name = input.Name
	product.Description = input.Description
	product.Specs = input.Specs
	product.ImageURL = input.ImageURL
	product.StockQuantity = input.StockQuantity
	product.MOQ = input.MOQ
	product.Tags = pq.StringArray(input.Tags)
	product.IsActive = input.IsActive

	product.CategoryID = nil
	if input.CategoryID != nil && *input.CategoryID != "" {
		categoryID, err := uuid.Parse(*input.CategoryID)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
		}
		product.CategoryID = &categoryID
	}

	product.UnitPrice = decimal.NullDecimal{}
	if input.UnitPrice != nil && *input.UnitPrice != "" {
		price, err := decimal.NewFromString(*input.UnitPrice)
		if err != nil || price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid unit price")
		}
		product.UnitPrice = decimal.NewNullDecimal(price)
	}
	return nil
}
