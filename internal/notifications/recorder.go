package notifications

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
)

const orderConfirmationType = "order_confirmation"

// Recorder queues outbound notifications as pending rows. A separate sender
// process owns delivery and flips status to sent or failed.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// RecordOrderConfirmation enqueues the confirmation email for a freshly
// created order, inside the checkout transaction.
func (r *Recorder) RecordOrderConfirmation(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	conn := tx
	if conn == nil {
		conn = r.db
	}

	var customer models.UserProfile
	if err := conn.WithContext(ctx).First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		return fmt.Errorf("load order customer: %w", err)
	}

	orderID := order.ID
	entry := &models.NotificationLog{
		NotificationType: orderConfirmationType,
		OrderID:          &orderID,
		RecipientEmail:   customer.Email,
		Subject:          fmt.Sprintf("Order %s received", order.OrderNumber),
		Body:             renderConfirmationBody(order),
	}
	if err := conn.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}

func renderConfirmationBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s has been received.\n\n", order.OrderNumber)
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "- %s (%s) x %d\n", line.Name, line.SKU, line.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal quantity: %d\n", order.TotalQty)
	fmt.Fprintf(&b, "Ship to: %s, %s %s %s %s\n",
		order.ShippingName, order.ShippingPostalCode, order.ShippingPrefecture,
		order.ShippingCity, order.ShippingAddress1)
	return b.String()
}
