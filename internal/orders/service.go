package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type addressLoader interface {
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.ShippingAddress, error)
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error
}

type notificationRecorder interface {
	RecordOrderConfirmation(ctx context.Context, tx *gorm.DB, order *models.Order) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error)
	List(ctx context.Context, actorID uuid.UUID, role enums.Role, params pagination.Params, status *enums.OrderStatus) (*OrderList, error)
	GetDetail(ctx context.Context, orderID, actorID uuid.UUID, role enums.Role) (*models.Order, error)
	Cancel(ctx context.Context, input CancelInput) error
	UpdateStatus(ctx context.Context, input StatusUpdateInput) error
}

type service struct {
	repo          Repository
	tx            txRunner
	addresses     addressLoader
	products      productLoader
	audit         auditRecorder
	notifications notificationRecorder
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, addresses addressLoader, products productLoader, audit auditRecorder, notifications notificationRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if notifications == nil {
		return nil, fmt.Errorf("notification recorder required")
	}
	return &service{
		repo:          repo,
		tx:            tx,
		addresses:     addresses,
		products:      products,
		audit:         audit,
		notifications: notifications,
	}, nil
}

// Checkout creates the order and its lines atomically, copying the shipping
// address and product fields as snapshots.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if input.ShippingAddressID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		address, err := s.addresses.FindByIDAndUser(ctx, input.ShippingAddressID, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shipping address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipping address")
		}

		now := time.Now().UTC()
		order := &models.Order{
			OrderNumber:        generateOrderNumber(now),
			CustomerID:         input.CustomerID,
			Status:             enums.OrderStatusPending,
			Note:               input.Note,
			ShippingName:       address.Company,
			ShippingCompany:    address.SiteName,
			ShippingPostalCode: address.PostalCode,
			ShippingPrefecture: address.Prefecture,
			ShippingCity:       address.City,
			ShippingAddress1:   address.Address1,
			ShippingAddress2:   address.Address2,
			ShippingPhone:      address.Phone,
			RequestedAt:        now,
			DeliveryDate:       input.DeliveryDate,
		}

		lines := make([]models.OrderLine, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
			}
			product, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			if item.Quantity < product.MOQ {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity below minimum order quantity").
					WithDetails(map[string]any{"product_id": product.ID, "moq": product.MOQ})
			}
			productID := product.ID
			lines = append(lines, models.OrderLine{
				ProductID: &productID,
				SKU:       product.SKU,
				Name:      product.Name,
				Quantity:  item.Quantity,
				Note:      item.Note,
			})
			order.TotalQty += item.Quantity
		}

		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := repo.CreateLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order lines")
		}
		order.Lines = lines

		if err := s.notifications.RecordOrderConfirmation(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record confirmation")
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns the caller's order page. Customers only ever see their own
// orders; sales and admin see everything.
func (s *service) List(ctx context.Context, actorID uuid.UUID, role enums.Role, params pagination.Params, status *enums.OrderStatus) (*OrderList, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}

	filter := ListFilter{Status: status}
	if !role.IsStaff() {
		filter.CustomerID = &actorID
	}

	list, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return list, nil
}

// GetDetail loads one order with lines and shipment. Customers asking for
// someone else's order get a not-found, mirroring row-level filtering.
func (s *service) GetDetail(ctx context.Context, orderID, actorID uuid.UUID, role enums.Role) (*models.Order, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !role.IsStaff() && order.CustomerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// Cancel authorizes and executes an order cancellation. The checks run in
// the contract order: authentication, existence, state, then ownership. The
// final write is conditional on a non-terminal status so a concurrent
// cancellation (or shipment) cannot produce a second success.
func (s *service) Cancel(ctx context.Context, input CancelInput) error {
	if input.ActorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		if !order.Status.IsCancellable() {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "this order can no longer be cancelled")
		}
		if order.CustomerID != input.ActorID && input.ActorRole != enums.RoleAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to cancel this order")
		}

		now := time.Now().UTC()
		rows, err := repo.CancelIfCancellable(ctx, order.ID, input.ActorID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
		}
		if rows == 0 {
			// Lost the race: the row moved to a terminal status between the
			// pre-check and the write.
			return pkgerrors.New(pkgerrors.CodeInvalidState, "this order can no longer be cancelled")
		}

		actorID := input.ActorID
		entry := &models.AuditLog{
			Action:    "order.cancelled",
			TableName: "orders",
			RecordID:  order.ID.String(),
			UserID:    &actorID,
			OldValues: map[string]any{"status": string(order.Status)},
			NewValues: map[string]any{
				"status":       string(enums.OrderStatusCancelled),
				"cancelled_by": actorID.String(),
				"cancelled_at": now.Format(time.RFC3339),
			},
		}
		if err := s.audit.Record(ctx, tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record audit entry")
		}
		return nil
	})
}

// UpdateStatus advances an order through the staff transition table.
func (s *service) UpdateStatus(ctx context.Context, input StatusUpdateInput) error {
	if input.ActorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	if !input.ActorRole.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}

		if !order.Status.CanTransitionTo(input.Status) {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "status transition not allowed").
				WithDetails(map[string]any{"from": string(order.Status), "to": string(input.Status)})
		}

		if err := repo.UpdateStatus(ctx, order.ID, input.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
		}

		actorID := input.ActorID
		entry := &models.AuditLog{
			Action:    "order.status_updated",
			TableName: "orders",
			RecordID:  order.ID.String(),
			UserID:    &actorID,
			OldValues: map[string]any{"status": string(order.Status)},
			NewValues: map[string]any{"status": string(input.Status)},
		}
		if err := s.audit.Record(ctx, tx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record audit entry")
		}
		return nil
	})
}

// generateOrderNumber yields a sortable, human-readable identifier such as
// ORD-20260831-4A1F0C.
func generateOrderNumber(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// uuid fallback keeps the number unique even without entropy
		return "ORD-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:6])
	}
	return "ORD-" + now.Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(buf))
}
