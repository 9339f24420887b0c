package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	repository.UserRepository
	register func(ctx context.Context, user *models.User) error
}

func (f *fakeUserRepo) Register(ctx context.Context, user *models.User) error {
	return f.register(ctx, user)
}

func newAuthHandler(repo repository.UserRepository) *AuthHandler {
	service := services.NewAuthService(repo, auth.NewJWTManager("test-secret", time.Hour))
	return NewAuthHandler(service, zerolog.Nop(), time.Second)
}

func TestRegisterCreated(t *testing.T) {
	handler := newAuthHandler(&fakeUserRepo{
		register: func(_ context.Context, user *models.User) error {
			user.ID = "user-1"
			return nil
		},
	})

	body := `{"name":"Ana","lastname":"Gomez","email":"ana@example.com","password":"supersecret","role":"CUSTOMER"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
}

func TestRegisterConflict(t *testing.T) {
	handler := newAuthHandler(&fakeUserRepo{
		register: func(_ context.Context, _ *models.User) error {
			return models.Conflict("email is already registered")
		},
	})

	body := `{"name":"Ana","lastname":"Gomez","email":"ana@example.com","password":"supersecret","role":"PROVIDER"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	handler := newAuthHandler(&fakeUserRepo{})

	body := `{"name":"Ana","lastname":"Gomez","email":"ana@example.com","password":"supersecret","role":"ADMIN"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp["reason"], "role")
}
