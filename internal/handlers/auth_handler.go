package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/services"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// AuthHandler - структура для обработки запросов регистрации и входа.
type AuthHandler struct {
	Service *services.AuthService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(service *services.AuthService, logger zerolog.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Register обрабатывает запросы на регистрацию пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Register(ctx, &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to register user")
		return
	}
	utils.SendJSON(w, http.StatusCreated, resp)
}

// Login обрабатывает запросы на вход.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(ctx, &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to log in")
		return
	}
	utils.SendJSON(w, http.StatusOK, resp)
}
