package controllers

import (
	"net/http"
	"time"

	"github.com/s50889/ordesite2-sub001/api/responses"
	dashboardsvc "github.com/s50889/ordesite2-sub001/internal/dashboard"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type dashboardOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	TotalQty    int    `json:"totalQty"`
	RequestedAt string `json:"requestedAt"`
}

type dashboardResponse struct {
	RecentOrders       []dashboardOrderResponse `json:"recentOrders"`
	PendingOrderCount  int64                    `json:"pendingOrderCount"`
	ActiveProductCount int64                    `json:"activeProductCount"`
	Announcements      []announcementResponse   `json:"announcements"`
}

// Dashboard aggregates the landing page figures in one call.
func Dashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summarize(r.Context(), actorID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := dashboardResponse{
			RecentOrders:       []dashboardOrderResponse{},
			PendingOrderCount:  summary.PendingOrderCount,
			ActiveProductCount: summary.ActiveProductCount,
			Announcements:      []announcementResponse{},
		}
		for _, order := range summary.RecentOrders {
			resp.RecentOrders = append(resp.RecentOrders, dashboardOrderResponse{
				ID:          order.ID.String(),
				OrderNumber: order.OrderNumber,
				Status:      string(order.Status),
				TotalQty:    order.TotalQty,
				RequestedAt: order.RequestedAt.UTC().Format(time.RFC3339),
			})
		}
		for i := range summary.Announcements {
			resp.Announcements = append(resp.Announcements, newAnnouncementResponse(&summary.Announcements[i]))
		}
		responses.WriteSuccess(w, resp)
	}
}
