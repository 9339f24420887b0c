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

// PetitionHandler - структура для обработки запросов к заявкам.
type PetitionHandler struct {
	Service *services.PetitionService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewPetitionHandler создает новый экземпляр PetitionHandler.
func NewPetitionHandler(service *services.PetitionService, logger zerolog.Logger, timeout time.Duration) *PetitionHandler {
	return &PetitionHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Create обрабатывает запросы на публикацию заявки.
func (h *PetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.PetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	petition, err := h.Service.Create(ctx, auth.UserID(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to create petition")
		return
	}
	utils.SendJSON(w, http.StatusCreated, petition)
}

// Feed обрабатывает запросы на ленту опубликованных заявок.
func (h *PetitionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	petitions, err := h.Service.Feed(ctx, auth.UserID(r.Context()),
		r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch feed")
		return
	}
	utils.SendJSON(w, http.StatusOK, petitions)
}

// Mine обрабатывает запросы на список собственных заявок клиента.
func (h *PetitionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	petitions, err := h.Service.Mine(ctx, auth.UserID(r.Context()),
		r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch petitions")
		return
	}
	utils.SendJSON(w, http.StatusOK, petitions)
}

// Complete обрабатывает запросы на завершение заявки.
func (h *PetitionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.Service.Complete, "failed to complete petition")
}

// Cancel обрабатывает запросы на отмену заявки.
func (h *PetitionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.Service.Cancel, "failed to cancel petition")
}

// Reactivate обрабатывает запросы на повторную публикацию отмененной заявки.
func (h *PetitionHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.Service.Reactivate, "failed to reactivate petition")
}

func (h *PetitionHandler) setState(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, userID, petitionID string) error, fallback string) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := op(ctx, auth.UserID(r.Context()), chi.URLParam(r, "petitionId")); err != nil {
		handleServiceError(w, h.Logger, err, fallback)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
