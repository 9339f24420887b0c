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

// PostulationHandler - структура для обработки запросов к откликам.
type PostulationHandler struct {
	Service *services.PostulationService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewPostulationHandler создает новый экземпляр PostulationHandler.
func NewPostulationHandler(service *services.PostulationService, logger zerolog.Logger, timeout time.Duration) *PostulationHandler {
	return &PostulationHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Apply обрабатывает запросы на создание отклика.
func (h *PostulationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.PostulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	postulation, err := h.Service.Apply(ctx, auth.UserID(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to create postulation")
		return
	}
	utils.SendJSON(w, http.StatusCreated, postulation)
}

// ListForPetition обрабатывает запросы владельца заявки на список откликов.
func (h *PostulationHandler) ListForPetition(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	postulations, err := h.Service.ListForPetition(ctx, auth.UserID(r.Context()), chi.URLParam(r, "petitionId"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch postulations")
		return
	}
	utils.SendJSON(w, http.StatusOK, postulations)
}

// Mine обрабатывает запросы исполнителя на историю своих откликов.
func (h *PostulationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	postulations, err := h.Service.Mine(ctx, auth.UserID(r.Context()),
		r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch postulations")
		return
	}
	utils.SendJSON(w, http.StatusOK, postulations)
}

// Accept обрабатывает запросы на принятие отклика.
func (h *PostulationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	winner, err := h.Service.Accept(ctx, auth.UserID(r.Context()), chi.URLParam(r, "postulationId"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to accept postulation")
		return
	}
	utils.SendJSON(w, http.StatusOK, winner)
}

// CheckApplied обрабатывает запросы исполнителя на проверку своего отклика.
func (h *PostulationHandler) CheckApplied(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	applied, err := h.Service.CheckApplied(ctx, auth.UserID(r.Context()), chi.URLParam(r, "petitionId"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to check postulation")
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]bool{"applied": applied})
}
