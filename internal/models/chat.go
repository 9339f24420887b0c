package models

import "time"

// Conversation представляет диалог двух пользователей, привязанный к заявке.
type Conversation struct {
	ID             string    `json:"id"`
	PetitionID     string    `json:"petitionId"`
	ParticipantIDs []string  `json:"participantIds"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Message представляет сообщение в диалоге.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StartConversationRequest представляет структуру запроса на открытие диалога.
type StartConversationRequest struct {
	PetitionID   string `json:"petitionId"`
	TargetUserID string `json:"targetUserId"`
}

// MessageRequest представляет структуру запроса на отправку сообщения.
type MessageRequest struct {
	Content string `json:"content"`
}

// ConversationResponse представляет диалог с заголовком заявки.
type ConversationResponse struct {
	ID            string    `json:"id"`
	PetitionID    string    `json:"petitionId"`
	PetitionTitle string    `json:"petitionTitle"`
	OtherUserID   string    `json:"otherUserId"`
	OtherUserName string    `json:"otherUserName"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ConversationWritable решает, открыт ли диалог для записи при текущем
// статусе заявки. После аджюдикации писать может только диалог,
// в котором участвует победивший исполнитель.
func ConversationWritable(state PetitionState, winnerUserID string, participantIDs []string) bool {
	switch state {
	case FinalizedPetition, CancelledPetition:
		return false
	case AdjudicatedPetition:
		if winnerUserID == "" {
			return false
		}
		for _, id := range participantIDs {
			if id == winnerUserID {
				return true
			}
		}
		return false
	default:
		return true
	}
}
