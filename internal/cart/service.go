package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations for one identity at a time.
type Service interface {
	Load(ctx context.Context, identity string) ([]Item, error)
	AddToCart(ctx context.Context, identity string, input AddInput) ([]Item, error)
	UpdateQuantity(ctx context.Context, identity, itemID string, quantity int) ([]Item, error)
	UpdateNote(ctx context.Context, identity, itemID string, note *string) ([]Item, error)
	RemoveItem(ctx context.Context, identity, itemID string) ([]Item, error)
	ClearCart(ctx context.Context, identity string) error
}

type service struct {
	store    *Store
	products productLoader
}

// NewService builds a cart service backed by the keyed store and the catalog.
func NewService(store *Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products}, nil
}

// AddInput captures one add-to-cart request.
type AddInput struct {
	ProductID uuid.UUID
	Quantity  int
	Note      *string
}

func (s *service) Load(ctx context.Context, identity string) ([]Item, error) {
	return s.store.ForIdentity(identity).Load(ctx)
}

// AddToCart fetches the product, then either increments the existing line
// for that product or appends a new one with a snapshot of the catalog data.
func (s *service) AddToCart(ctx context.Context, identity string, input AddInput) ([]Item, error) {
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	bucket := s.store.ForIdentity(identity)
	items, err := bucket.Load(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Specs:     product.Specs,
			ImageURL:  product.ImageURL,
			UnitPrice: product.UnitPrice,
			MOQ:       product.MOQ,
			Quantity:  qty,
			Note:      input.Note,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := bucket.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity replaces the quantity on the matching line. An absent
// itemID is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, identity, itemID string, quantity int) ([]Item, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	bucket := s.store.ForIdentity(identity)
	items, err := bucket.Load(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		return items, nil
	}

	if err := bucket.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateNote replaces the note on the matching line. An absent itemID is a
// no-op.
func (s *service) UpdateNote(ctx context.Context, identity, itemID string, note *string) ([]Item, error) {
	bucket := s.store.ForIdentity(identity)
	items, err := bucket.Load(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Note = note
			changed = true
			break
		}
	}
	if !changed {
		return items, nil
	}

	if err := bucket.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) RemoveItem(ctx context.Context, identity, itemID string) ([]Item, error) {
	bucket := s.store.ForIdentity(identity)
	items, err := bucket.Load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		return items, nil
	}

	if err := bucket.Save(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

func (s *service) ClearCart(ctx context.Context, identity string) error {
	return s.store.ForIdentity(identity).Clear(ctx)
}
