package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	announcementssvc "github.com/s50889/ordesite2-sub001/internal/announcements"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
)

type announcementResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Priority  int    `json:"priority"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func newAnnouncementResponse(announcement *models.Announcement) announcementResponse {
	return announcementResponse{
		ID:        announcement.ID.String(),
		Title:     announcement.Title,
		Content:   announcement.Content,
		Type:      string(announcement.Type),
		Priority:  announcement.Priority,
		IsActive:  announcement.IsActive,
		CreatedAt: announcement.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeAnnouncementList(w http.ResponseWriter, list []models.Announcement) {
	out := make([]announcementResponse, 0, len(list))
	for i := range list {
		out = append(out, newAnnouncementResponse(&list[i]))
	}
	responses.WriteSuccess(w, out)
}

// ListAnnouncements returns the active notices every signed-in user sees.
func ListAnnouncements(svc announcementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeAnnouncementList(w, list)
	}
}

// ListAllAnnouncements returns every notice, including inactive ones, for
// the admin screen.
func ListAllAnnouncements(svc announcementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeAnnouncementList(w, list)
	}
}

// CreateAnnouncement publishes a new notice.
func CreateAnnouncement(svc announcementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload announcementssvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		announcement, err := svc.Create(r.Context(), actorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAnnouncementResponse(announcement))
	}
}

// UpdateAnnouncement edits an existing notice.
func UpdateAnnouncement(svc announcementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcementID, err := validators.ParsePathUUID(chi.URLParam(r, "announcementID"), "announcementID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload announcementssvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		announcement, err := svc.Update(r.Context(), announcementID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAnnouncementResponse(announcement))
	}
}

// DeleteAnnouncement removes a notice outright.
func DeleteAnnouncement(svc announcementssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcementID, err := validators.ParsePathUUID(chi.URLParam(r, "announcementID"), "announcementID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), announcementID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
