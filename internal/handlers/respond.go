package handlers

import (
	"net/http"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// handleServiceError переводит ошибку сервиса в HTTP-ответ. Бизнес-ошибки
// несут свой статус, все прочее скрывается за 500 с общим сообщением.
func handleServiceError(w http.ResponseWriter, logger zerolog.Logger, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		logger.Warn().Err(err).Msg(fallback)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}
