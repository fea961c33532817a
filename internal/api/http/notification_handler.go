package http

import (
	"net/http"

	"gearmarket-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	page, pageSize := pagination(r)
	notifications, total, err := h.notifications.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
		"page":          page,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	notificationID, err := pathID(r, "notificationID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.notifications.MarkAsRead(r.Context(), userID, notificationID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type registerDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	var req registerDeviceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.notifications.RegisterDeviceToken(r.Context(), userID, req.Token, req.Platform); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}
