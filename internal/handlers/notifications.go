package handlers

import (
	"net/http"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// NotificationFeed defines the notification list operations
type NotificationFeed interface {
	List() []models.Notification
	Clear()
}

// AnnouncementSource provides operator service updates
type AnnouncementSource interface {
	ServiceUpdates() []models.ServiceUpdate
}

// NotificationHandler handles notifications and service updates
type NotificationHandler struct {
	feed    NotificationFeed
	updates AnnouncementSource
}

func NewNotificationHandler(feed NotificationFeed, updates AnnouncementSource) *NotificationHandler {
	return &NotificationHandler{feed: feed, updates: updates}
}

// GetNotifications handles GET /api/notifications
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.feed.List()
	writeJSON(w, http.StatusOK, cacheNone, ListResponse{Items: items, Count: len(items)})
}

// ClearNotifications handles DELETE /api/notifications
func (h *NotificationHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.feed.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// GetServiceUpdates handles GET /api/service-updates
func (h *NotificationHandler) GetServiceUpdates(w http.ResponseWriter, r *http.Request) {
	updates := h.updates.ServiceUpdates()
	writeJSON(w, http.StatusOK, cacheStatic, ListResponse{Items: updates, Count: len(updates)})
}
