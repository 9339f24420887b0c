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

// GradeHandler - структура для обработки запросов к оценкам.
type GradeHandler struct {
	Service *services.GradeService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewGradeHandler создает новый экземпляр GradeHandler.
func NewGradeHandler(service *services.GradeService, logger zerolog.Logger, timeout time.Duration) *GradeHandler {
	return &GradeHandler{Service: service, Logger: logger, Timeout: timeout}
}

// RateProvider обрабатывает запросы клиента на оценку исполнителя.
func (h *GradeHandler) RateProvider(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, h.Service.RateProvider, "failed to rate provider")
}

// RateCustomer обрабатывает запросы исполнителя на оценку клиента.
func (h *GradeHandler) RateCustomer(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, h.Service.RateCustomer, "failed to rate customer")
}

func (h *GradeHandler) rate(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, userID string, req *models.RateRequest) (*models.Grade, error), fallback string) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grade, err := op(ctx, auth.UserID(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, fallback)
		return
	}
	utils.SendJSON(w, http.StatusCreated, grade)
}

// ProviderReviews обрабатывает запросы на отзывы об исполнителе.
func (h *GradeHandler) ProviderReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	reviews, err := h.Service.ProviderReviews(ctx, chi.URLParam(r, "providerId"),
		r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch reviews")
		return
	}
	utils.SendJSON(w, http.StatusOK, reviews)
}

// CheckRated обрабатывает запросы клиента на проверку выставленной оценки.
func (h *GradeHandler) CheckRated(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rated, err := h.Service.HasRatedProvider(ctx, auth.UserID(r.Context()),
		chi.URLParam(r, "petitionId"), chi.URLParam(r, "providerId"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to check rating")
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]bool{"rated": rated})
}
