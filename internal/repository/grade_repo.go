package repository

import (
	"context"
	"time"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GradeRepository - интерфейс для работы с оценками.
type GradeRepository interface {
	CreateProviderGrade(ctx context.Context, grade *models.Grade) error
	CreateCustomerGrade(ctx context.Context, grade *models.Grade) error
	HasProviderGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error)
	HasCustomerGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error)
	ProviderReviews(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewResponse, error)
	ProviderRating(ctx context.Context, providerID string) (float64, int, error)
}

// PostgresGradeRepository - реализация GradeRepository для базы данных.
type PostgresGradeRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresGradeRepository создает новый экземпляр PostgresGradeRepository.
func NewPostgresGradeRepository(db *pgxpool.Pool) *PostgresGradeRepository {
	return &PostgresGradeRepository{DB: db}
}

// CreateProviderGrade сохраняет оценку исполнителя клиентом.
func (r *PostgresGradeRepository) CreateProviderGrade(ctx context.Context, grade *models.Grade) error {
	return r.insert(ctx, "grade_providers", grade)
}

// CreateCustomerGrade сохраняет оценку клиента исполнителем.
func (r *PostgresGradeRepository) CreateCustomerGrade(ctx context.Context, grade *models.Grade) error {
	return r.insert(ctx, "grade_customers", grade)
}

func (r *PostgresGradeRepository) insert(ctx context.Context, table string, grade *models.Grade) error {
	grade.ID = uuid.New().String()
	grade.IsVisible = true
	grade.CreatedAt = time.Now().UTC()

	query := `INSERT INTO ` + table + `
	              (id, petition_id, customer_id, provider_id, rating, comment, is_visible, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)`
	_, err := r.DB.Exec(ctx, query,
		grade.ID, grade.PetitionID, grade.CustomerID, grade.ProviderID,
		grade.Rating, grade.Comment, grade.CreatedAt)
	if isUniqueViolation(err) {
		return models.Conflict("this petition has already been rated")
	}
	return err
}

// HasProviderGrade проверяет, оценивал ли клиент исполнителя по этой заявке.
func (r *PostgresGradeRepository) HasProviderGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error) {
	return r.exists(ctx, "grade_providers", petitionID, customerID, providerID)
}

// HasCustomerGrade проверяет, оценивал ли исполнитель клиента по этой заявке.
func (r *PostgresGradeRepository) HasCustomerGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error) {
	return r.exists(ctx, "grade_customers", petitionID, customerID, providerID)
}

func (r *PostgresGradeRepository) exists(ctx context.Context, table, petitionID, customerID, providerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + table + `
	          WHERE petition_id = $1 AND customer_id = $2 AND provider_id = $3)`
	err := r.DB.QueryRow(ctx, query, petitionID, customerID, providerID).Scan(&exists)
	return exists, err
}

// ProviderReviews возвращает видимые отзывы об исполнителе.
// Из соображений приватности показывается только имя автора без фамилии.
func (r *PostgresGradeRepository) ProviderReviews(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewResponse, error) {
	query := `
		SELECT g.id, u.name, g.rating, COALESCE(g.comment, ''), g.created_at
		FROM grade_providers g
		JOIN customers c ON c.id = g.customer_id
		JOIN users u ON u.id = c.user_id
		WHERE g.provider_id = $1 AND g.is_visible = TRUE
		ORDER BY g.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.ReviewResponse{}
	for rows.Next() {
		var rev models.ReviewResponse
		if err = rows.Scan(&rev.ID, &rev.ReviewerName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// ProviderRating возвращает средний балл и число отзывов исполнителя.
func (r *PostgresGradeRepository) ProviderRating(ctx context.Context, providerID string) (float64, int, error) {
	var avg float64
	var count int
	query := `SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*)
	          FROM grade_providers WHERE provider_id = $1 AND is_visible = TRUE`
	err := r.DB.QueryRow(ctx, query, providerID).Scan(&avg, &count)
	return avg, count, err
}
