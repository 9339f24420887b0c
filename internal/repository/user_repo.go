package repository

import (
	"context"
	"errors"
	"time"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для работы с пользователями и их ролевыми профилями.
type UserRepository interface {
	Register(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, name, lastname, profileImage *string) error
	Deactivate(ctx context.Context, id string) error
	GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	GetProviderByUserID(ctx context.Context, userID string) (*models.Provider, error)
	GetProviderByID(ctx context.Context, id string) (*models.Provider, error)
	UpdateCustomer(ctx context.Context, customerID string, phone *string) error
	UpdateProvider(ctx context.Context, providerID string, description, professionID *string) error
	SetProviderCities(ctx context.Context, providerID string, cityIDs []string) error
	GetProviderCityNames(ctx context.Context, providerID string) ([]string, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Register создает пользователя и его ролевой профиль в одной транзакции.
func (r *PostgresUserRepository) Register(ctx context.Context, user *models.User) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	user.ID = uuid.New().String()
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()

	insertUser := `INSERT INTO users (id, name, lastname, email, password_hash, role, is_active, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.Exec(ctx, insertUser,
		user.ID, user.Name, user.Lastname, user.Email, user.PasswordHash, user.Role, user.IsActive, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Conflict("email is already registered")
		}
		return err
	}

	switch user.Role {
	case models.RoleProvider:
		_, err = tx.Exec(ctx, `INSERT INTO providers (id, user_id) VALUES ($1, $2)`, uuid.New().String(), user.ID)
	default:
		_, err = tx.Exec(ctx, `INSERT INTO customers (id, user_id) VALUES ($1, $2)`, uuid.New().String(), user.ID)
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByEmail возвращает активного пользователя по email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, lastname, email, password_hash, role, COALESCE(profile_image, ''), is_active, created_at
	          FROM users WHERE email = $1 AND is_active = TRUE`
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Lastname, &user.Email, &user.PasswordHash,
		&user.Role, &user.ProfileImage, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID возвращает активного пользователя по id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, lastname, email, password_hash, role, COALESCE(profile_image, ''), is_active, created_at
	          FROM users WHERE id = $1 AND is_active = TRUE`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Lastname, &user.Email, &user.PasswordHash,
		&user.Role, &user.ProfileImage, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser обновляет базовые поля пользователя; nil-поля не трогаются.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id string, name, lastname, profileImage *string) error {
	query := `UPDATE users
	          SET name = COALESCE($2, name),
	              lastname = COALESCE($3, lastname),
	              profile_image = COALESCE($4, profile_image)
	          WHERE id = $1 AND is_active = TRUE`
	tag, err := r.DB.Exec(ctx, query, id, name, lastname, profileImage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("user not found")
	}
	return nil
}

// Deactivate выполняет мягкое удаление учетной записи.
func (r *PostgresUserRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("user not found")
	}
	return nil
}

// GetCustomerByUserID возвращает профиль клиента по id пользователя.
func (r *PostgresUserRepository) GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	var c models.Customer
	query := `SELECT id, user_id, COALESCE(phone, '') FROM customers WHERE user_id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.Forbidden("user has no customer profile")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCustomerByID возвращает профиль клиента по его id.
func (r *PostgresUserRepository) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	query := `SELECT id, user_id, COALESCE(phone, '') FROM customers WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserID, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("customer not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetProviderByUserID возвращает профиль исполнителя по id пользователя.
func (r *PostgresUserRepository) GetProviderByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	var p models.Provider
	query := `SELECT id, user_id, profession_id, COALESCE(description, '') FROM providers WHERE user_id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.ProfessionID, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.Forbidden("user has no provider profile")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProviderByID возвращает профиль исполнителя по его id.
func (r *PostgresUserRepository) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	var p models.Provider
	query := `SELECT id, user_id, profession_id, COALESCE(description, '') FROM providers WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&p.ID, &p.UserID, &p.ProfessionID, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("provider not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateCustomer обновляет профиль клиента.
func (r *PostgresUserRepository) UpdateCustomer(ctx context.Context, customerID string, phone *string) error {
	_, err := r.DB.Exec(ctx, `UPDATE customers SET phone = COALESCE($2, phone) WHERE id = $1`, customerID, phone)
	return err
}

// UpdateProvider обновляет профиль исполнителя.
func (r *PostgresUserRepository) UpdateProvider(ctx context.Context, providerID string, description, professionID *string) error {
	query := `UPDATE providers
	          SET description = COALESCE($2, description),
	              profession_id = COALESCE($3, profession_id)
	          WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, providerID, description, professionID)
	return err
}

// SetProviderCities заменяет список городов обслуживания исполнителя.
func (r *PostgresUserRepository) SetProviderCities(ctx context.Context, providerID string, cityIDs []string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM provider_cities WHERE provider_id = $1`, providerID); err != nil {
		return err
	}
	for _, cityID := range cityIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO provider_cities (provider_id, city_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			providerID, cityID)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetProviderCityNames возвращает названия городов обслуживания исполнителя.
func (r *PostgresUserRepository) GetProviderCityNames(ctx context.Context, providerID string) ([]string, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.name FROM provider_cities pc
		JOIN cities c ON c.id = pc.city_id
		WHERE pc.provider_id = $1
		ORDER BY c.name`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// isUniqueViolation сообщает, является ли ошибка нарушением уникального индекса.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
