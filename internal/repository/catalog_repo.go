package repository

import (
	"context"
	"errors"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository - интерфейс для чтения справочников.
type CatalogRepository interface {
	GetProfessions(ctx context.Context) ([]models.Profession, error)
	GetCities(ctx context.Context) ([]models.City, error)
	GetPetitionTypes(ctx context.Context) ([]models.PetitionType, error)
	GetProfession(ctx context.Context, id string) (*models.Profession, error)
	GetCity(ctx context.Context, id string) (*models.City, error)
	GetPetitionType(ctx context.Context, id string) (*models.PetitionType, error)
}

// PostgresCatalogRepository - реализация CatalogRepository для базы данных.
type PostgresCatalogRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCatalogRepository создает новый экземпляр PostgresCatalogRepository.
func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

// GetProfessions возвращает справочник профессий.
func (r *PostgresCatalogRepository) GetProfessions(ctx context.Context) ([]models.Profession, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM professions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	professions := []models.Profession{}
	for rows.Next() {
		var p models.Profession
		if err = rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		professions = append(professions, p)
	}
	return professions, rows.Err()
}

// GetCities возвращает справочник городов.
func (r *PostgresCatalogRepository) GetCities(ctx context.Context) ([]models.City, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// GetPetitionTypes возвращает справочник типов заявок.
func (r *PostgresCatalogRepository) GetPetitionTypes(ctx context.Context) ([]models.PetitionType, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM petition_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []models.PetitionType{}
	for rows.Next() {
		var t models.PetitionType
		if err = rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetProfession возвращает профессию по id.
func (r *PostgresCatalogRepository) GetProfession(ctx context.Context, id string) (*models.Profession, error) {
	var p models.Profession
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM professions WHERE id = $1`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("profession not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetCity возвращает город по id.
func (r *PostgresCatalogRepository) GetCity(ctx context.Context, id string) (*models.City, error) {
	var c models.City
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM cities WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("city not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetPetitionType возвращает тип заявки по id.
func (r *PostgresCatalogRepository) GetPetitionType(ctx context.Context, id string) (*models.PetitionType, error) {
	var t models.PetitionType
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM petition_types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("petition type not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
