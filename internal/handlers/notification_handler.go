package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/services"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// NotificationHandler - структура для обработки запросов к уведомлениям.
type NotificationHandler struct {
	Service *services.NotificationService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewNotificationHandler создает новый экземпляр NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, logger zerolog.Logger, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{Service: service, Logger: logger, Timeout: timeout}
}

// List обрабатывает запросы на список уведомлений пользователя.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	notifications, err := h.Service.List(ctx, auth.UserID(r.Context()),
		r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch notifications")
		return
	}
	utils.SendJSON(w, http.StatusOK, notifications)
}

// UnreadCount обрабатывает запросы на число непрочитанных уведомлений.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	count, err := h.Service.UnreadCount(ctx, auth.UserID(r.Context()))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to count notifications")
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

// MarkRead обрабатывает запросы на отметку уведомления прочитанным.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.MarkRead(ctx, auth.UserID(r.Context()), chi.URLParam(r, "notificationId")); err != nil {
		handleServiceError(w, h.Logger, err, "failed to mark notification as read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
