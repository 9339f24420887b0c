package services

import (
	"context"
	"testing"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/stretchr/testify/require"
)

func TestChatStartRequiresOwnerParticipation(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	petitionRepo := &mockPetitionRepo{
		GetWithOwnerFn: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.PublishedPetition}, "owner-user", nil
		},
	}
	chatRepo := &mockChatRepo{
		FindOrCreateConversationFn: func(_ context.Context, petitionID, userID, targetUserID string) (*models.Conversation, error) {
			return &models.Conversation{
				ID:             "conv-1",
				PetitionID:     petitionID,
				ParticipantIDs: []string{userID, targetUserID},
			}, nil
		},
	}
	service := NewChatService(chatRepo, petitionRepo, userRepo)

	// Исполнитель пишет владельцу заявки.
	conv, err := service.Start(context.Background(), "prov-user", &models.StartConversationRequest{
		PetitionID:   "pet-1",
		TargetUserID: "owner-user",
	})
	require.NoError(t, err)
	require.Equal(t, "conv-1", conv.ID)

	// Диалог двух посторонних по чужой заявке запрещен.
	_, err = service.Start(context.Background(), "prov-user", &models.StartConversationRequest{
		PetitionID:   "pet-1",
		TargetUserID: "other-user",
	})
	require.True(t, models.IsKind(err, models.KindForbidden))
}

func TestChatSendMessageRequiresParticipant(t *testing.T) {
	chatRepo := &mockChatRepo{
		IsParticipantFn: func(_ context.Context, _, userID string) (bool, error) {
			return userID == "member", nil
		},
		CreateMessageFn: func(_ context.Context, conversationID, senderID, content string) (*models.Message, error) {
			return &models.Message{ID: "msg-1", ConversationID: conversationID, SenderID: senderID, Content: content}, nil
		},
	}
	service := NewChatService(chatRepo, &mockPetitionRepo{}, &mockUserRepo{})

	msg, err := service.SendMessage(context.Background(), "member", "conv-1", &models.MessageRequest{Content: "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", msg.Content)

	_, err = service.SendMessage(context.Background(), "stranger", "conv-1", &models.MessageRequest{Content: "hi"})
	require.True(t, models.IsKind(err, models.KindForbidden))
}

func TestChatSendMessageClosedConversation(t *testing.T) {
	chatRepo := &mockChatRepo{
		IsParticipantFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		CreateMessageFn: func(_ context.Context, _, _, _ string) (*models.Message, error) {
			return nil, models.InvalidState("conversation is closed for new messages")
		},
	}
	service := NewChatService(chatRepo, &mockPetitionRepo{}, &mockUserRepo{})

	_, err := service.SendMessage(context.Background(), "member", "conv-1", &models.MessageRequest{Content: "hello?"})
	require.True(t, models.IsKind(err, models.KindInvalidState))
}
