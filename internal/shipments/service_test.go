package shipments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

type stubShipmentRepo struct {
	shipments map[uuid.UUID]*models.Shipment
	statuses  map[string]*models.ShippingStatus
	saved     []*models.Shipment
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{
		shipments: map[uuid.UUID]*models.Shipment{},
		statuses:  map[string]*models.ShippingStatus{},
	}
}

func (r *stubShipmentRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Shipment, error) {
	return r.shipments[orderID], nil
}

func (r *stubShipmentRepo) Upsert(ctx context.Context, shipment *models.Shipment) error {
	r.shipments[shipment.OrderID] = shipment
	r.saved = append(r.saved, shipment)
	return nil
}

func (r *stubShipmentRepo) FindStatusByCode(ctx context.Context, code string) (*models.ShippingStatus, error) {
	return r.statuses[code], nil
}

func (r *stubShipmentRepo) ListStatuses(ctx context.Context) ([]models.ShippingStatus, error) {
	var list []models.ShippingStatus
	for _, status := range r.statuses {
		list = append(list, *status)
	}
	return list, nil
}

type stubOrderFinder struct {
	orders map[uuid.UUID]*models.Order
}

func (f *stubOrderFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("want %s, got %v", code, err)
	}
}

func TestUpdateRequiresStaff(t *testing.T) {
	svc := NewService(newStubShipmentRepo(), &stubOrderFinder{orders: map[uuid.UUID]*models.Order{}})

	_, err := svc.Update(context.Background(), UpdateInput{
		OrderID:    uuid.New(),
		StatusCode: "in_transit",
		ActorID:    uuid.New(),
		ActorRole:  enums.RoleCustomer,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateRejectsUnknownStatusCode(t *testing.T) {
	order := &models.Order{ID: uuid.New(), CustomerID: uuid.New()}
	repo := newStubShipmentRepo()
	svc := NewService(repo, &stubOrderFinder{orders: map[uuid.UUID]*models.Order{order.ID: order}})

	_, err := svc.Update(context.Background(), UpdateInput{
		OrderID:    order.ID,
		StatusCode: "teleported",
		ActorID:    uuid.New(),
		ActorRole:  enums.RoleSales,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateCreatesShipmentOnFirstProgress(t *testing.T) {
	order := &models.Order{ID: uuid.New(), CustomerID: uuid.New()}
	repo := newStubShipmentRepo()
	repo.statuses["in_transit"] = &models.ShippingStatus{ID: 2, StatusCode: "in_transit", StatusName: "In Transit"}
	svc := NewService(repo, &stubOrderFinder{orders: map[uuid.UUID]*models.Order{order.ID: order}})

	notes := "left the warehouse"
	shipment, err := svc.Update(context.Background(), UpdateInput{
		OrderID:    order.ID,
		StatusCode: "in_transit",
		Notes:      &notes,
		ActorID:    uuid.New(),
		ActorRole:  enums.RoleSales,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if shipment.OrderID != order.ID {
		t.Fatalf("shipment order = %s", shipment.OrderID)
	}
	if shipment.CurrentStatusID == nil || *shipment.CurrentStatusID != 2 {
		t.Fatalf("status id = %v", shipment.CurrentStatusID)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d shipments", len(repo.saved))
	}

	// second update mutates the same row
	repo.statuses["delivered"] = &models.ShippingStatus{ID: 4, StatusCode: "delivered", StatusName: "Delivered"}
	again, err := svc.Update(context.Background(), UpdateInput{
		OrderID:    order.ID,
		StatusCode: "delivered",
		ActorID:    uuid.New(),
		ActorRole:  enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if again.Notes == nil || *again.Notes != notes {
		t.Fatalf("notes lost on second update: %v", again.Notes)
	}
}

func TestGetForOrderHidesForeignOrders(t *testing.T) {
	owner := uuid.New()
	order := &models.Order{ID: uuid.New(), CustomerID: owner}
	repo := newStubShipmentRepo()
	repo.shipments[order.ID] = &models.Shipment{ID: uuid.New(), OrderID: order.ID}
	svc := NewService(repo, &stubOrderFinder{orders: map[uuid.UUID]*models.Order{order.ID: order}})

	_, err := svc.GetForOrder(context.Background(), order.ID, uuid.New(), enums.RoleCustomer)
	assertCode(t, err, pkgerrors.CodeNotFound)

	shipment, err := svc.GetForOrder(context.Background(), order.ID, owner, enums.RoleCustomer)
	if err != nil {
		t.Fatalf("get for owner: %v", err)
	}
	if shipment.OrderID != order.ID {
		t.Fatalf("shipment = %+v", shipment)
	}
}
