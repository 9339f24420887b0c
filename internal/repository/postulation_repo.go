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

// PostulationRepository - интерфейс для работы с откликами.
type PostulationRepository interface {
	Create(ctx context.Context, postulation *models.Postulation) error
	GetByID(ctx context.Context, id string) (*models.Postulation, error)
	ExistsForPair(ctx context.Context, petitionID, providerID string) (bool, error)
	ListForPetition(ctx context.Context, petitionID string) ([]models.PostulationResponse, error)
	Mine(ctx context.Context, providerID string, limit, offset int) ([]models.PostulationResponse, error)
	Adjudicate(ctx context.Context, postulationID string) (*models.AdjudicationResult, error)
	HasWinningPostulation(ctx context.Context, petitionID, providerID string) (bool, error)
}

// PostgresPostulationRepository - реализация PostulationRepository для базы данных.
type PostgresPostulationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresPostulationRepository создает новый экземпляр PostgresPostulationRepository.
func NewPostgresPostulationRepository(db *pgxpool.Pool) *PostgresPostulationRepository {
	return &PostgresPostulationRepository{DB: db}
}

// Create создает новый отклик в статусе PENDING.
// Уникальный индекс (petition_id, provider_id) закрывает гонку между
// проверкой дубликата в сервисе и вставкой.
func (r *PostgresPostulationRepository) Create(ctx context.Context, postulation *models.Postulation) error {
	postulation.ID = uuid.New().String()
	postulation.State = models.PendingPostulation
	postulation.IsWinner = false
	postulation.CreatedAt = time.Now().UTC()

	query := `INSERT INTO postulations
	              (id, petition_id, provider_id, proposal, budget, state, is_winner, is_deleted, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, $7)`
	_, err := r.DB.Exec(ctx, query,
		postulation.ID, postulation.PetitionID, postulation.ProviderID,
		postulation.Proposal, postulation.Budget, postulation.State, postulation.CreatedAt)
	if isUniqueViolation(err) {
		return models.Conflict("you have already applied to this petition")
	}
	return err
}

// GetByID возвращает отклик по id.
func (r *PostgresPostulationRepository) GetByID(ctx context.Context, id string) (*models.Postulation, error) {
	var p models.Postulation
	query := `SELECT id, petition_id, provider_id, proposal, budget, state, is_winner, is_deleted, created_at
	          FROM postulations WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PetitionID, &p.ProviderID, &p.Proposal, &p.Budget,
		&p.State, &p.IsWinner, &p.IsDeleted, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("postulation not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ExistsForPair проверяет, есть ли уже отклик этой пары (заявка, исполнитель).
func (r *PostgresPostulationRepository) ExistsForPair(ctx context.Context, petitionID, providerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM postulations
	          WHERE petition_id = $1 AND provider_id = $2 AND is_deleted = FALSE)`
	err := r.DB.QueryRow(ctx, query, petitionID, providerID).Scan(&exists)
	return exists, err
}

// ListForPetition возвращает все отклики по заявке с данными исполнителей.
func (r *PostgresPostulationRepository) ListForPetition(ctx context.Context, petitionID string) ([]models.PostulationResponse, error) {
	query := respondentsQuery + ` WHERE p.petition_id = $1 AND p.is_deleted = FALSE ORDER BY p.created_at DESC`
	return r.queryResponses(ctx, query, petitionID)
}

// Mine возвращает историю откликов исполнителя.
func (r *PostgresPostulationRepository) Mine(ctx context.Context, providerID string, limit, offset int) ([]models.PostulationResponse, error) {
	query := respondentsQuery + ` WHERE p.provider_id = $1 AND p.is_deleted = FALSE
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	return r.queryResponses(ctx, query, providerID, limit, offset)
}

const respondentsQuery = `
	SELECT p.id, p.petition_id, p.provider_id, u.name || ' ' || u.lastname, COALESCE(u.profile_image, ''),
	       COALESCE((SELECT ROUND(AVG(g.rating)::numeric, 1) FROM grade_providers g
	                 WHERE g.provider_id = p.provider_id AND g.is_visible = TRUE), 0),
	       p.proposal, p.budget, p.state, p.is_winner, p.created_at
	FROM postulations p
	JOIN providers pr ON pr.id = p.provider_id
	JOIN users u ON u.id = pr.user_id`

// Adjudicate выполняет аджюдикацию одной транзакцией: защитный перевод
// заявки из PUBLISHED в ADJUDICATED, принятие победителя и групповое
// отклонение остальных откликов одним UPDATE.
func (r *PostgresPostulationRepository) Adjudicate(ctx context.Context, postulationID string) (*models.AdjudicationResult, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var winner models.Postulation
	var winnerUserID string
	err = tx.QueryRow(ctx, `
		SELECT p.id, p.petition_id, p.provider_id, p.proposal, p.budget, p.state, p.is_winner, p.is_deleted, p.created_at, pr.user_id
		FROM postulations p
		JOIN providers pr ON pr.id = p.provider_id
		WHERE p.id = $1
		FOR UPDATE OF p`, postulationID).Scan(
		&winner.ID, &winner.PetitionID, &winner.ProviderID, &winner.Proposal, &winner.Budget,
		&winner.State, &winner.IsWinner, &winner.IsDeleted, &winner.CreatedAt, &winnerUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("postulation not found")
	}
	if err != nil {
		return nil, err
	}

	// Только одна заявка может покинуть статус PUBLISHED: при нуле
	// затронутых строк конкурирующая аджюдикация уже прошла.
	tag, err := tx.Exec(ctx,
		`UPDATE petitions SET state = $2 WHERE id = $1 AND state = $3`,
		winner.PetitionID, models.AdjudicatedPetition, models.PublishedPetition)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.InvalidState("petition is no longer open for adjudication")
	}

	_, err = tx.Exec(ctx,
		`UPDATE postulations SET state = $2, is_winner = TRUE WHERE id = $1`,
		winner.ID, models.AcceptedPostulation)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE postulations SET state = $3 WHERE petition_id = $1 AND id <> $2`,
		winner.PetitionID, winner.ID, models.RejectedPostulation)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT pr.user_id FROM postulations p
		JOIN providers pr ON pr.id = p.provider_id
		WHERE p.petition_id = $1 AND p.id <> $2`, winner.PetitionID, winner.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rejected []string
	for rows.Next() {
		var userID string
		if err = rows.Scan(&userID); err != nil {
			return nil, err
		}
		rejected = append(rejected, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	winner.State = models.AcceptedPostulation
	winner.IsWinner = true
	return &models.AdjudicationResult{
		Winner:          winner,
		WinnerUserID:    winnerUserID,
		PetitionID:      winner.PetitionID,
		RejectedUserIDs: rejected,
	}, nil
}

// HasWinningPostulation проверяет, победил ли исполнитель именно в этой заявке.
func (r *PostgresPostulationRepository) HasWinningPostulation(ctx context.Context, petitionID, providerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM postulations
	          WHERE petition_id = $1 AND provider_id = $2 AND is_winner = TRUE)`
	err := r.DB.QueryRow(ctx, query, petitionID, providerID).Scan(&exists)
	return exists, err
}

func (r *PostgresPostulationRepository) queryResponses(ctx context.Context, query string, args ...interface{}) ([]models.PostulationResponse, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postulations := []models.PostulationResponse{}
	for rows.Next() {
		var p models.PostulationResponse
		if err = rows.Scan(&p.ID, &p.PetitionID, &p.ProviderID, &p.ProviderName, &p.ProviderImage,
			&p.ProviderRating, &p.Proposal, &p.Budget, &p.State, &p.IsWinner, &p.CreatedAt); err != nil {
			return nil, err
		}
		postulations = append(postulations, p)
	}
	return postulations, rows.Err()
}
