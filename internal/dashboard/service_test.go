package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

type stubOrderReader struct {
	recentScope  *uuid.UUID
	countScope   *uuid.UUID
	recent       []models.Order
	pendingCount int64
}

func (s *stubOrderReader) ListRecent(ctx context.Context, customerID *uuid.UUID, limit int) ([]models.Order, error) {
	s.recentScope = customerID
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubOrderReader) CountByStatus(ctx context.Context, customerID *uuid.UUID, status enums.OrderStatus) (int64, error) {
	s.countScope = customerID
	return s.pendingCount, nil
}

type stubProductCounter struct {
	count int64
}

func (s *stubProductCounter) CountActive(ctx context.Context) (int64, error) {
	return s.count, nil
}

type stubAnnouncementReader struct {
	active []models.Announcement
}

func (s *stubAnnouncementReader) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return s.active, nil
}

func TestSummarizeRequiresIdentity(t *testing.T) {
	svc := NewService(&stubOrderReader{}, &stubProductCounter{}, &stubAnnouncementReader{})

	_, err := svc.Summarize(context.Background(), uuid.Nil, enums.RoleCustomer)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthenticated {
		t.Fatalf("want unauthenticated, got %v", err)
	}
}

func TestSummarizeScopesCustomers(t *testing.T) {
	orders := &stubOrderReader{
		recent:       make([]models.Order, 7),
		pendingCount: 3,
	}
	svc := NewService(orders, &stubProductCounter{count: 42}, &stubAnnouncementReader{
		active: []models.Announcement{{Title: "Maintenance window"}},
	})

	customer := uuid.New()
	summary, err := svc.Summarize(context.Background(), customer, enums.RoleCustomer)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if orders.recentScope == nil || *orders.recentScope != customer {
		t.Fatalf("recent orders scope = %v", orders.recentScope)
	}
	if orders.countScope == nil || *orders.countScope != customer {
		t.Fatalf("pending count scope = %v", orders.countScope)
	}
	if len(summary.RecentOrders) != 5 {
		t.Fatalf("recent orders = %d, want 5", len(summary.RecentOrders))
	}
	if summary.PendingOrderCount != 3 || summary.ActiveProductCount != 42 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Announcements) != 1 {
		t.Fatalf("announcements = %+v", summary.Announcements)
	}
}

func TestSummarizeStaffSeeEverything(t *testing.T) {
	for _, role := range []enums.Role{enums.RoleSales, enums.RoleAdmin} {
		orders := &stubOrderReader{}
		svc := NewService(orders, &stubProductCounter{}, &stubAnnouncementReader{})

		if _, err := svc.Summarize(context.Background(), uuid.New(), role); err != nil {
			t.Fatalf("summarize as %s: %v", role, err)
		}
		if orders.recentScope != nil || orders.countScope != nil {
			t.Fatalf("role %s must not be scoped", role)
		}
	}
}
