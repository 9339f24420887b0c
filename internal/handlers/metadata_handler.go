package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/comunidad/petition-service/internal/services"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// MetadataHandler - структура для обработки запросов к справочникам.
type MetadataHandler struct {
	Service *services.MetadataService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewMetadataHandler создает новый экземпляр MetadataHandler.
func NewMetadataHandler(service *services.MetadataService, logger zerolog.Logger, timeout time.Duration) *MetadataHandler {
	return &MetadataHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Professions обрабатывает запросы на справочник профессий.
func (h *MetadataHandler) Professions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	professions, err := h.Service.Professions(ctx)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch professions")
		return
	}
	utils.SendJSON(w, http.StatusOK, professions)
}

// Cities обрабатывает запросы на справочник городов.
func (h *MetadataHandler) Cities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	cities, err := h.Service.Cities(ctx)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch cities")
		return
	}
	utils.SendJSON(w, http.StatusOK, cities)
}

// PetitionTypes обрабатывает запросы на справочник типов заявок.
func (h *MetadataHandler) PetitionTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	types, err := h.Service.PetitionTypes(ctx)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch petition types")
		return
	}
	utils.SendJSON(w, http.StatusOK, types)
}
