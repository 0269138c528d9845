package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  customer_id TEXT NOT NULL,
  assigned_sales_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  total_qty INTEGER NOT NULL DEFAULT 0,
  note TEXT,
  shipping_name TEXT NOT NULL,
  shipping_company TEXT,
  shipping_postal_code TEXT NOT NULL,
  shipping_prefecture TEXT NOT NULL,
  shipping_city TEXT NOT NULL,
  shipping_address1 TEXT NOT NULL,
  shipping_address2 TEXT,
  shipping_phone TEXT NOT NULL,
  shipping_email TEXT,
  requested_at DATETIME NOT NULL,
  delivery_date DATETIME,
  cancelled_by TEXT,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  note TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLines).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, customerID uuid.UUID, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                 uuid.New(),
		OrderNumber:        fmt.Sprintf("ORD-%s", uuid.NewString()[:8]),
		CustomerID:         customerID,
		Status:             status,
		TotalQty:           5,
		ShippingName:       "Test Works Inc.",
		ShippingPostalCode: "100-0001",
		ShippingPrefecture: "Tokyo",
		ShippingCity:       "Chiyoda",
		ShippingAddress1:   "1-1-1 Marunouchi",
		ShippingPhone:      "03-0000-0000",
		RequestedAt:        created,
		CreatedAt:          created,
		UpdatedAt:          created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCancelIfCancellable(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	order := createTestOrder(t, db, customerID, enums.OrderStatusProcessing, time.Now().UTC())

	now := time.Now().UTC()
	rows, err := repo.CancelIfCancellable(ctx, order.ID, customerID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, customerID, *got.CancelledBy)
	assert.NotNil(t, got.CancelledAt)

	// a second attempt must not match the terminal row
	rows, err = repo.CancelIfCancellable(ctx, order.ID, customerID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestRepositoryCancelIfCancellableSkipsTerminalStatuses(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	for _, status := range enums.NonCancellableOrderStatuses {
		order := createTestOrder(t, db, customerID, status, time.Now().UTC())
		rows, err := repo.CancelIfCancellable(ctx, order.ID, customerID, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows, "status %s must not be cancellable", status)

		got, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status, "status %s must be untouched", status)
	}
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		createTestOrder(t, db, alice, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}
	createTestOrder(t, db, bob, enums.OrderStatusPending, base.Add(10*time.Minute))

	page, err := repo.List(ctx, ListFilter{CustomerID: &alice}, pagination.Params{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 3)
	require.NotNil(t, page.NextCursor)
	for _, order := range page.Orders {
		assert.Equal(t, alice, order.CustomerID)
	}

	rest, err := repo.List(ctx, ListFilter{CustomerID: &alice}, pagination.Params{Limit: 3, Cursor: *page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, rest.Orders, 1)
	assert.Nil(t, rest.NextCursor)

	pending := enums.OrderStatusPending
	all, err := repo.List(ctx, ListFilter{Status: &pending}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all.Orders, 5)
}

func TestRepositoryDashboardReads(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		createTestOrder(t, db, alice, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}
	createTestOrder(t, db, alice, enums.OrderStatusShipped, base.Add(30*time.Minute))

	recent, err := repo.ListRecent(ctx, &alice, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
	assert.Equal(t, enums.OrderStatusShipped, recent[0].Status, "newest order first")

	count, err := repo.CountByStatus(ctx, &alice, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	other := uuid.New()
	count, err = repo.CountByStatus(ctx, &other, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Zero(t, count)
}
