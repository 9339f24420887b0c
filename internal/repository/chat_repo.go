package repository

import (
	"context"
	"errors"
	"time"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository - интерфейс для работы с диалогами и сообщениями.
type ChatRepository interface {
	FindOrCreateConversation(ctx context.Context, petitionID, userID, targetUserID string) (*models.Conversation, error)
	MyConversations(ctx context.Context, userID string) ([]models.ConversationResponse, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	Messages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error)
	CreateMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
}

// PostgresChatRepository - реализация ChatRepository для базы данных.
type PostgresChatRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresChatRepository создает новый экземпляр PostgresChatRepository.
func NewPostgresChatRepository(db *pgxpool.Pool) *PostgresChatRepository {
	return &PostgresChatRepository{DB: db}
}

// FindOrCreateConversation возвращает существующий диалог пары по заявке
// или создает новый с двумя участниками. Пара хранится в каноническом
// порядке, и уникальный индекс (petition_id, user_low, user_high)
// закрывает гонку двух конкурентных открытий одного диалога.
func (r *PostgresChatRepository) FindOrCreateConversation(ctx context.Context, petitionID, userID, targetUserID string) (*models.Conversation, error) {
	low, high := canonicalPair(userID, targetUserID)

	conv, err := r.findConversation(ctx, petitionID, low, high)
	if err == nil {
		conv.ParticipantIDs = []string{userID, targetUserID}
		return conv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	created, err := r.createConversation(ctx, petitionID, low, high, userID, targetUserID)
	if isUniqueViolation(err) {
		// Конкурентный вызов успел создать диалог первым.
		conv, err = r.findConversation(ctx, petitionID, low, high)
		if err != nil {
			return nil, err
		}
		conv.ParticipantIDs = []string{userID, targetUserID}
		return conv, nil
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// canonicalPair упорядочивает пару участников так, как она хранится в базе.
func canonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *PostgresChatRepository) findConversation(ctx context.Context, petitionID, low, high string) (*models.Conversation, error) {
	var conv models.Conversation
	query := `SELECT id, petition_id, created_at FROM conversations
	          WHERE petition_id = $1 AND user_low = $2 AND user_high = $3`
	err := r.DB.QueryRow(ctx, query, petitionID, low, high).Scan(&conv.ID, &conv.PetitionID, &conv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PostgresChatRepository) createConversation(ctx context.Context, petitionID, low, high, userID, targetUserID string) (*models.Conversation, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	conv := models.Conversation{
		ID:             uuid.New().String(),
		PetitionID:     petitionID,
		ParticipantIDs: []string{userID, targetUserID},
		CreatedAt:      time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO conversations (id, petition_id, user_low, user_high, created_at) VALUES ($1, $2, $3, $4, $5)`,
		conv.ID, conv.PetitionID, low, high, conv.CreatedAt)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2), ($1, $3)`,
		conv.ID, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &conv, nil
}

// MyConversations возвращает диалоги пользователя с данными собеседника.
func (r *PostgresChatRepository) MyConversations(ctx context.Context, userID string) ([]models.ConversationResponse, error) {
	query := `
		SELECT c.id, c.petition_id, p.description, other.user_id, u.name || ' ' || u.lastname, c.created_at
		FROM conversations c
		JOIN petitions p ON p.id = c.petition_id
		JOIN conversation_participants me ON me.conversation_id = c.id AND me.user_id = $1
		JOIN conversation_participants other ON other.conversation_id = c.id AND other.user_id <> $1
		JOIN users u ON u.id = other.user_id
		ORDER BY c.created_at DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.ConversationResponse{}
	for rows.Next() {
		var c models.ConversationResponse
		if err = rows.Scan(&c.ID, &c.PetitionID, &c.PetitionTitle, &c.OtherUserID, &c.OtherUserName, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// IsParticipant проверяет, участвует ли пользователь в диалоге.
func (r *PostgresChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM conversation_participants
	          WHERE conversation_id = $1 AND user_id = $2)`
	err := r.DB.QueryRow(ctx, query, conversationID, userID).Scan(&exists)
	return exists, err
}

// Messages возвращает историю сообщений диалога от новых к старым.
func (r *PostgresChatRepository) Messages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, is_read, created_at
	          FROM messages WHERE conversation_id = $1
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err = rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateMessage вставляет сообщение, перепроверяя доступность диалога в той же
// транзакции: между чтением статуса на клиенте и отправкой заявка могла быть
// аджюдицирована другому исполнителю или закрыта.
func (r *PostgresChatRepository) CreateMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var petitionID string
	var state models.PetitionState
	err = tx.QueryRow(ctx, `
		SELECT p.id, p.state FROM conversations c
		JOIN petitions p ON p.id = c.petition_id
		WHERE c.id = $1
		FOR SHARE OF p`, conversationID).Scan(&petitionID, &state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("conversation not found")
	}
	if err != nil {
		return nil, err
	}

	var winnerUserID string
	err = tx.QueryRow(ctx, `
		SELECT pr.user_id FROM postulations po
		JOIN providers pr ON pr.id = po.provider_id
		WHERE po.petition_id = $1 AND po.is_winner = TRUE`, petitionID).Scan(&winnerUserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT user_id FROM conversation_participants WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return nil, err
	}
	var participants []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		participants = append(participants, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if !models.ConversationWritable(state, winnerUserID, participants) {
		return nil, models.InvalidState("conversation is closed for new messages")
	}

	msg := models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)`,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead помечает прочитанными входящие сообщения диалога.
func (r *PostgresChatRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE`,
		conversationID, userID)
	return err
}
