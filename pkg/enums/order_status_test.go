package enums

import "testing"

func TestOrderStatusIsCancellable(t *testing.T) {
	cancellable := []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted}
	for _, s := range cancellable {
		if !s.IsCancellable() {
			t.Fatalf("expected %s to be cancellable", s)
		}
	}

	for _, s := range NonCancellableOrderStatuses {
		if s.IsCancellable() {
			t.Fatalf("expected %s to be non-cancellable", s)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusDelivered, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusCompleted, OrderStatusPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	role, err := ParseRole("sales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !role.IsStaff() {
		t.Fatalf("sales should be staff")
	}
	if RoleCustomer.IsStaff() {
		t.Fatalf("customer should not be staff")
	}
}
