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

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakePetitionRepo переопределяет только используемые в тесте методы;
// вызов остальных уронит тест.
type fakePetitionRepo struct {
	repository.PetitionRepository
	getWithOwner func(ctx context.Context, id string) (*models.Petition, string, error)
	setState     func(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error
}

func (f *fakePetitionRepo) GetWithOwner(ctx context.Context, id string) (*models.Petition, string, error) {
	return f.getWithOwner(ctx, id)
}

func (f *fakePetitionRepo) SetState(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error {
	return f.setState(ctx, id, state, isDeleted)
}

func newCancelRequest(t *testing.T, userID, petitionID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/petitions/"+petitionID+"/cancel", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("petitionId", petitionID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(auth.WithUserID(ctx, userID))
}

func newPetitionHandler(repo repository.PetitionRepository) *PetitionHandler {
	notifications := services.NewNotificationService(nil, zerolog.Nop())
	service := services.NewPetitionService(repo, nil, nil, notifications, zerolog.Nop())
	return NewPetitionHandler(service, zerolog.Nop(), time.Second)
}

func TestCancelPetitionNoContent(t *testing.T) {
	handler := newPetitionHandler(&fakePetitionRepo{
		getWithOwner: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.PublishedPetition}, "user-1", nil
		},
		setState: func(_ context.Context, _ string, state models.PetitionState, _ bool) error {
			require.Equal(t, models.CancelledPetition, state)
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Cancel(rec, newCancelRequest(t, "user-1", "pet-1"))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCancelPetitionInvalidState(t *testing.T) {
	handler := newPetitionHandler(&fakePetitionRepo{
		getWithOwner: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.CancelledPetition}, "user-1", nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Cancel(rec, newCancelRequest(t, "user-1", "pet-1"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body["reason"], "published")
}

func TestCancelPetitionForbidden(t *testing.T) {
	handler := newPetitionHandler(&fakePetitionRepo{
		getWithOwner: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.PublishedPetition}, "owner-user", nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Cancel(rec, newCancelRequest(t, "intruder", "pet-1"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreatePetitionInvalidBody(t *testing.T) {
	handler := newPetitionHandler(&fakePetitionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/petitions", strings.NewReader("{broken"))
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
