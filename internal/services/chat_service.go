package services

import (
	"context"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/utils"
)

// ChatService содержит методы для диалогов между клиентами и исполнителями.
type ChatService struct {
	Repo         repository.ChatRepository
	PetitionRepo repository.PetitionRepository
	UserRepo     repository.UserRepository
}

// NewChatService создает новый экземпляр ChatService.
func NewChatService(repo repository.ChatRepository, petitionRepo repository.PetitionRepository,
	userRepo repository.UserRepository) *ChatService {
	return &ChatService{Repo: repo, PetitionRepo: petitionRepo, UserRepo: userRepo}
}

// Start открывает диалог по заявке или возвращает уже существующий.
// Одним из участников должен быть владелец заявки.
func (s *ChatService) Start(ctx context.Context, userID string, req *models.StartConversationRequest) (*models.Conversation, error) {
	if req.PetitionID == "" || req.TargetUserID == "" {
		return nil, models.BadRequest("petitionId and targetUserId are required")
	}
	if req.TargetUserID == userID {
		return nil, models.BadRequest("you cannot start a conversation with yourself")
	}

	if _, err := s.UserRepo.GetByID(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	_, ownerUserID, err := s.PetitionRepo.GetWithOwner(ctx, req.PetitionID)
	if err != nil {
		return nil, err
	}
	if ownerUserID != userID && ownerUserID != req.TargetUserID {
		return nil, models.Forbidden("conversation must involve the petition owner")
	}

	return s.Repo.FindOrCreateConversation(ctx, req.PetitionID, userID, req.TargetUserID)
}

// MyConversations возвращает диалоги пользователя.
func (s *ChatService) MyConversations(ctx context.Context, userID string) ([]models.ConversationResponse, error) {
	return s.Repo.MyConversations(ctx, userID)
}

// Messages возвращает историю сообщений; доступно только участнику диалога.
func (s *ChatService) Messages(ctx context.Context, userID, conversationID, limitStr, offsetStr string) ([]models.Message, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	if err = s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.Repo.Messages(ctx, conversationID, limit, offset)
}

// SendMessage отправляет сообщение в диалог. Доступность диалога для записи
// перепроверяется в транзакции вставки.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID string, req *models.MessageRequest) (*models.Message, error) {
	if req.Content == "" {
		return nil, models.BadRequest("content is required")
	}
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.Repo.CreateMessage(ctx, conversationID, userID, req.Content)
}

// MarkRead помечает входящие сообщения диалога прочитанными.
func (s *ChatService) MarkRead(ctx context.Context, userID, conversationID string) error {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return err
	}
	return s.Repo.MarkRead(ctx, conversationID, userID)
}

func (s *ChatService) requireParticipant(ctx context.Context, conversationID, userID string) error {
	ok, err := s.Repo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.Forbidden("you are not a participant of this conversation")
	}
	return nil
}
