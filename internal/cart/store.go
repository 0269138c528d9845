package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

// GuestIdentity is the bucket key for carts created before authentication.
const GuestIdentity = "guest"

// Item is a single cart line. Product fields are a snapshot taken at add
// time and do not refresh when the catalog changes.
type Item struct {
	ID        string              `json:"id"`
	ProductID uuid.UUID           `json:"product_id"`
	SKU       string              `json:"sku"`
	Name      string              `json:"name"`
	Specs     *string             `json:"specs,omitempty"`
	ImageURL  *string             `json:"image_url,omitempty"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	MOQ       int                 `json:"moq"`
	Quantity  int                 `json:"quantity"`
	Note      *string             `json:"note,omitempty"`
	AddedAt   time.Time           `json:"added_at"`
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(identity string) string
}

// Store persists carts in Redis, one list per identity key. Switching the
// identity swaps the whole cart: buckets never merge.
type Store struct {
	kv  kvStore
	ttl time.Duration
}

// NewStore builds the keyed cart store.
func NewStore(kv kvStore, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("cart kv store required")
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// ForIdentity returns the bucket for the given identity. An empty identity
// maps to the shared guest bucket.
func (s *Store) ForIdentity(identity string) *Bucket {
	if identity == "" {
		identity = GuestIdentity
	}
	return &Bucket{store: s, identity: identity}
}

// Bucket is one identity's cart.
type Bucket struct {
	store    *Store
	identity string
}

// Identity returns the bucket's identity key.
func (b *Bucket) Identity() string {
	return b.identity
}

// Load reads the persisted list. An absent key yields an empty cart.
func (b *Bucket) Load(ctx context.Context) ([]Item, error) {
	raw, err := b.store.kv.Get(ctx, b.key())
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return []Item{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return items, nil
}

// Save persists the full list in a single write.
func (b *Bucket) Save(ctx context.Context, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := b.store.kv.Set(ctx, b.key(), string(payload), b.store.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart")
	}
	return nil
}

// Clear erases the persisted entry entirely.
func (b *Bucket) Clear(ctx context.Context) error {
	if err := b.store.kv.Del(ctx, b.key()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (b *Bucket) key() string {
	return b.store.kv.CartKey(b.identity)
}
