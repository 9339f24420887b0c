package services

import (
	"context"
	"strings"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService содержит методы для регистрации и входа пользователей.
type AuthService struct {
	Repo repository.UserRepository
	JWT  *auth.JWTManager
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo repository.UserRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{Repo: repo, JWT: jwtManager}
}

// Register создает пользователя с выбранной ролью и сразу выдает токен.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Lastname == "" {
		return nil, models.BadRequest("name and lastname are required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, models.BadRequest("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, models.BadRequest("password must be at least 8 characters")
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleProvider {
		return nil, models.BadRequest("role must be CUSTOMER or PROVIDER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err = s.Repo.Register(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWT.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token}, nil
}

// Login проверяет учетные данные и выдает токен.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, models.BadRequest("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if models.IsKind(err, models.KindNotFound) {
			return nil, models.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.Unauthorized("invalid email or password")
	}

	token, err := s.JWT.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token}, nil
}
