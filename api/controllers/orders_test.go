package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/api/middleware"
	orderssvc "github.com/s50889/ordesite2-sub001/internal/orders"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/pagination"
)

type stubOrdersService struct {
	cancelErr   error
	cancelInput orderssvc.CancelInput
	detail      *models.Order
	detailErr   error
}

func (s *stubOrdersService) Checkout(ctx context.Context, input orderssvc.CheckoutInput) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrdersService) List(ctx context.Context, actorID uuid.UUID, role enums.Role, params pagination.Params, status *enums.OrderStatus) (*orderssvc.OrderList, error) {
	return &orderssvc.OrderList{}, nil
}

func (s *stubOrdersService) GetDetail(ctx context.Context, orderID, actorID uuid.UUID, role enums.Role) (*models.Order, error) {
	return s.detail, s.detailErr
}

func (s *stubOrdersService) Cancel(ctx context.Context, input orderssvc.CancelInput) error {
	s.cancelInput = input
	return s.cancelErr
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, input orderssvc.StatusUpdateInput) error {
	return nil
}

func cancelRequest(t *testing.T, orderID string, userID uuid.UUID, role enums.Role) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+orderID+"/cancel", nil)
	ctx := req.Context()
	if userID != uuid.Nil {
		ctx = middleware.WithUserID(ctx, userID.String())
		ctx = middleware.WithRole(ctx, role)
	}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderID", orderID)
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, routeCtx))
}

func TestCancelOrderSuccess(t *testing.T) {
	svc := &stubOrdersService{}
	handler := CancelOrder(svc, nil)

	orderID := uuid.New()
	userID := uuid.New()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cancelRequest(t, orderID.String(), userID, enums.RoleCustomer))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope")
	}
	if svc.cancelInput.OrderID != orderID || svc.cancelInput.ActorID != userID {
		t.Fatalf("cancel input = %+v", svc.cancelInput)
	}
	if svc.cancelInput.ActorRole != enums.RoleCustomer {
		t.Fatalf("cancel role = %s", svc.cancelInput.ActorRole)
	}
}

func TestCancelOrderAnonymous(t *testing.T) {
	handler := CancelOrder(&stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cancelRequest(t, uuid.NewString(), uuid.Nil, ""))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCancelOrderInvalidID(t *testing.T) {
	handler := CancelOrder(&stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cancelRequest(t, "not-a-uuid", uuid.New(), enums.RoleCustomer))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCancelOrderErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "order not found"), http.StatusNotFound, "order not found"},
		{"terminal", pkgerrors.New(pkgerrors.CodeInvalidState, "this order can no longer be cancelled"), http.StatusBadRequest, "this order can no longer be cancelled"},
		{"forbidden", pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to cancel this order"), http.StatusForbidden, "not allowed to cancel this order"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := CancelOrder(&stubOrdersService{cancelErr: tc.err}, nil)

			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, cancelRequest(t, uuid.NewString(), uuid.New(), enums.RoleCustomer))

			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.Code)
			}

			var envelope struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if envelope.Error != tc.msg {
				t.Fatalf("error = %q, want %q", envelope.Error, tc.msg)
			}
		})
	}
}

func TestGetOrderReturnsDetail(t *testing.T) {
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260831-ABCDEF",
		CustomerID:  uuid.New(),
		Status:      enums.OrderStatusPending,
		TotalQty:    5,
	}
	handler := GetOrder(&stubOrdersService{detail: order}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cancelRequest(t, order.ID.String(), order.CustomerID, enums.RoleCustomer))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != order.OrderNumber || envelope.Data.Status != "pending" {
		t.Fatalf("response = %+v", envelope.Data)
	}
}
