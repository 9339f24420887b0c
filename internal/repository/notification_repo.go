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

// NotificationRepository - интерфейс для работы с уведомлениями.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	MatchingProviderUserIDs(ctx context.Context, professionID, cityID, excludeUserID string) ([]string, error)
	List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNotificationRepository создает новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// Create сохраняет уведомление.
func (r *PostgresNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notifications
	              (id, user_id, title, message, type, link, petition_id, postulation_id, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9)`
	_, err := r.DB.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.Link, notification.PetitionID, notification.PostulationID,
		notification.CreatedAt)
	return err
}

// MatchingProviderUserIDs возвращает id пользователей-исполнителей, у которых
// совпадает профессия и город заявки входит в список обслуживания.
func (r *PostgresNotificationRepository) MatchingProviderUserIDs(ctx context.Context, professionID, cityID, excludeUserID string) ([]string, error) {
	query := `
		SELECT pr.user_id FROM providers pr
		JOIN provider_cities pc ON pc.provider_id = pr.id
		JOIN users u ON u.id = pr.user_id
		WHERE pr.profession_id = $1 AND pc.city_id = $2
		  AND pr.user_id <> $3 AND u.is_active = TRUE`
	rows, err := r.DB.Query(ctx, query, professionID, cityID, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// List возвращает уведомления пользователя от новых к старым.
func (r *PostgresNotificationRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	query := `SELECT id, user_id, title, message, type, COALESCE(link, ''), petition_id, postulation_id, is_read, read_at, created_at
	          FROM notifications WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Link,
			&n.PetitionID, &n.PostulationID, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UnreadCount возвращает число непрочитанных уведомлений.
func (r *PostgresNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	return count, err
}

// GetByID возвращает уведомление по id.
func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	query := `SELECT id, user_id, title, message, type, COALESCE(link, ''), petition_id, postulation_id, is_read, read_at, created_at
	          FROM notifications WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
		&n.Link, &n.PetitionID, &n.PostulationID, &n.IsRead, &n.ReadAt, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("notification not found")
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead помечает уведомление прочитанным.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id string) error {
	now := time.Now().UTC()
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $2 WHERE id = $1`, id, now)
	return err
}
