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

// ChatHandler - структура для обработки запросов к диалогам.
type ChatHandler struct {
	Service *services.ChatService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewChatHandler создает новый экземпляр ChatHandler.
func NewChatHandler(service *services.ChatService, logger zerolog.Logger, timeout time.Duration) *ChatHandler {
	return &ChatHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Start обрабатывает запросы на открытие диалога по заявке.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conversation, err := h.Service.Start(ctx, auth.UserID(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to start conversation")
		return
	}
	utils.SendJSON(w, http.StatusCreated, conversation)
}

// MyConversations обрабатывает запросы на список диалогов пользователя.
func (h *ChatHandler) MyConversations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	conversations, err := h.Service.MyConversations(ctx, auth.UserID(r.Context()))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch conversations")
		return
	}
	utils.SendJSON(w, http.StatusOK, conversations)
}

// Messages обрабатывает запросы на историю сообщений диалога.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	messages, err := h.Service.Messages(ctx, auth.UserID(r.Context()),
		chi.URLParam(r, "conversationId"), r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to fetch messages")
		return
	}
	utils.SendJSON(w, http.StatusOK, messages)
}

// SendMessage обрабатывает запросы на отправку сообщения.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.Service.SendMessage(ctx, auth.UserID(r.Context()), chi.URLParam(r, "conversationId"), &req)
	if err != nil {
		handleServiceError(w, h.Logger, err, "failed to send message")
		return
	}
	utils.SendJSON(w, http.StatusCreated, message)
}

// MarkRead обрабатывает запросы на отметку входящих сообщений прочитанными.
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.MarkRead(ctx, auth.UserID(r.Context()), chi.URLParam(r, "conversationId")); err != nil {
		handleServiceError(w, h.Logger, err, "failed to mark messages as read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
