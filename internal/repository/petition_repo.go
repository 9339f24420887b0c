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

// PetitionRepository - интерфейс для работы с заявками.
type PetitionRepository interface {
	Create(ctx context.Context, petition *models.Petition) error
	GetByID(ctx context.Context, id string) (*models.Petition, error)
	GetWithOwner(ctx context.Context, id string) (*models.Petition, string, error)
	Feed(ctx context.Context, excludeUserID string, limit, offset int) ([]models.PetitionResponse, error)
	Mine(ctx context.Context, customerID string, limit, offset int) ([]models.PetitionResponse, error)
	SetState(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error
}

// PostgresPetitionRepository - реализация PetitionRepository для базы данных.
type PostgresPetitionRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresPetitionRepository создает новый экземпляр PostgresPetitionRepository.
func NewPostgresPetitionRepository(db *pgxpool.Pool) *PostgresPetitionRepository {
	return &PostgresPetitionRepository{DB: db}
}

// Create создает новую заявку в статусе PUBLISHED.
func (r *PostgresPetitionRepository) Create(ctx context.Context, petition *models.Petition) error {
	petition.ID = uuid.New().String()
	petition.State = models.PublishedPetition
	petition.DateSince = time.Now().UTC()
	petition.CreatedAt = petition.DateSince

	query := `INSERT INTO petitions
	              (id, customer_id, description, profession_id, city_id, type_id, state, date_since, date_until, is_deleted, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10)`
	_, err := r.DB.Exec(ctx, query,
		petition.ID, petition.CustomerID, petition.Description, petition.ProfessionID,
		petition.CityID, petition.TypeID, petition.State, petition.DateSince, petition.DateUntil, petition.CreatedAt)
	return err
}

// GetByID возвращает заявку по id.
func (r *PostgresPetitionRepository) GetByID(ctx context.Context, id string) (*models.Petition, error) {
	var p models.Petition
	query := `SELECT id, customer_id, description, profession_id, city_id, type_id, state, date_since, date_until, is_deleted, created_at
	          FROM petitions WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerID, &p.Description, &p.ProfessionID, &p.CityID, &p.TypeID,
		&p.State, &p.DateSince, &p.DateUntil, &p.IsDeleted, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("petition not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetWithOwner возвращает заявку вместе с id пользователя-владельца.
func (r *PostgresPetitionRepository) GetWithOwner(ctx context.Context, id string) (*models.Petition, string, error) {
	var p models.Petition
	var ownerUserID string
	query := `SELECT p.id, p.customer_id, p.description, p.profession_id, p.city_id, p.type_id,
	                 p.state, p.date_since, p.date_until, p.is_deleted, p.created_at, c.user_id
	          FROM petitions p
	          JOIN customers c ON c.id = p.customer_id
	          WHERE p.id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerID, &p.Description, &p.ProfessionID, &p.CityID, &p.TypeID,
		&p.State, &p.DateSince, &p.DateUntil, &p.IsDeleted, &p.CreatedAt, &ownerUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", models.NotFound("petition not found")
	}
	if err != nil {
		return nil, "", err
	}
	return &p, ownerUserID, nil
}

// Feed возвращает опубликованные заявки, исключая заявки самого пользователя.
func (r *PostgresPetitionRepository) Feed(ctx context.Context, excludeUserID string, limit, offset int) ([]models.PetitionResponse, error) {
	query := `
		SELECT p.id, p.description, pr.name, ci.name, pt.name, p.state, p.date_since, p.date_until,
		       u.name || ' ' || u.lastname
		FROM petitions p
		JOIN professions pr ON pr.id = p.profession_id
		JOIN cities ci ON ci.id = p.city_id
		JOIN petition_types pt ON pt.id = p.type_id
		JOIN customers c ON c.id = p.customer_id
		JOIN users u ON u.id = c.user_id
		WHERE p.state = $1 AND p.is_deleted = FALSE AND c.user_id <> $2
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4`
	return r.queryResponses(ctx, query, models.PublishedPetition, excludeUserID, limit, offset)
}

// Mine возвращает заявки клиента в любом статусе.
func (r *PostgresPetitionRepository) Mine(ctx context.Context, customerID string, limit, offset int) ([]models.PetitionResponse, error) {
	query := `
		SELECT p.id, p.description, pr.name, ci.name, pt.name, p.state, p.date_since, p.date_until,
		       u.name || ' ' || u.lastname
		FROM petitions p
		JOIN professions pr ON pr.id = p.profession_id
		JOIN cities ci ON ci.id = p.city_id
		JOIN petition_types pt ON pt.id = p.type_id
		JOIN customers c ON c.id = p.customer_id
		JOIN users u ON u.id = c.user_id
		WHERE p.customer_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryResponses(ctx, query, customerID, limit, offset)
}

// SetState переводит заявку в новый статус и синхронизирует флаг удаления.
func (r *PostgresPetitionRepository) SetState(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE petitions SET state = $2, is_deleted = $3 WHERE id = $1`, id, state, isDeleted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("petition not found")
	}
	return nil
}

func (r *PostgresPetitionRepository) queryResponses(ctx context.Context, query string, args ...interface{}) ([]models.PetitionResponse, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	petitions := []models.PetitionResponse{}
	for rows.Next() {
		var p models.PetitionResponse
		if err = rows.Scan(&p.ID, &p.Description, &p.Profession, &p.City, &p.Type,
			&p.State, &p.DateSince, &p.DateUntil, &p.CustomerName); err != nil {
			return nil, err
		}
		petitions = append(petitions, p)
	}
	return petitions, rows.Err()
}
