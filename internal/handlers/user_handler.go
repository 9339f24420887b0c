package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/services"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UserHandler - структура для обработки запросов к профилям пользователей.
type UserHandler struct {
	Service *services.UserService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(service *services.UserService, logger zerolog.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{Service: service, Logger: logger, Timeout: timeout}
}

// GetMe обрабатывает запросы на получение собственного профиля.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	profile, err := h.Service.GetProfile(ctx, auth.UserID(r.Context()))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// UpdateMe обрабатывает запросы на обновление собственного профиля.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.UserProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.UpdateProfile(ctx, auth.UserID(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to update profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// DeleteMe обрабатывает запросы на удаление учетной записи.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.Deactivate(ctx, auth.UserID(r.Context())); err != nil {
		handleServiceError(w, h.Logger, err, "failed to deactivate account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProviderProfile обрабатывает запросы на публичную карточку исполнителя.
func (h *UserHandler) GetProviderProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	card, err := h.Service.ProviderPublicProfile(ctx, chi.URLParam(r, "providerId"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch provider profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, card)
}
