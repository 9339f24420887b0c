package services

import (
	"context"
	"testing"
	"time"

	"github.com/comunidad/petition-service/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newPetitionService(petitionRepo *mockPetitionRepo, userRepo *mockUserRepo,
	catalogRepo *mockCatalogRepo, notificationRepo *mockNotificationRepo) *PetitionService {
	notifications := NewNotificationService(notificationRepo, zerolog.Nop())
	return NewPetitionService(petitionRepo, userRepo, catalogRepo, notifications, zerolog.Nop())
}

func TestPetitionCreateNotifiesMatchingProviders(t *testing.T) {
	var created []models.Notification

	userRepo := &mockUserRepo{
		GetCustomerByUserIDFn: func(_ context.Context, userID string) (*models.Customer, error) {
			return &models.Customer{ID: "cust-1", UserID: userID}, nil
		},
	}
	catalogRepo := &mockCatalogRepo{
		GetProfessionFn: func(_ context.Context, id string) (*models.Profession, error) {
			return &models.Profession{ID: id, Name: "Electrician"}, nil
		},
		GetCityFn: func(_ context.Context, id string) (*models.City, error) {
			return &models.City{ID: id, Name: "Rosario"}, nil
		},
		GetPetitionTypeFn: func(_ context.Context, id string) (*models.PetitionType, error) {
			return &models.PetitionType{ID: id, Name: "Repair"}, nil
		},
	}
	petitionRepo := &mockPetitionRepo{
		CreateFn: func(_ context.Context, p *models.Petition) error {
			p.ID = "pet-1"
			p.State = models.PublishedPetition
			return nil
		},
	}
	notificationRepo := &mockNotificationRepo{
		MatchingProviderUserIDsFn: func(_ context.Context, professionID, cityID, excludeUserID string) ([]string, error) {
			require.Equal(t, "prof-1", professionID)
			require.Equal(t, "city-1", cityID)
			require.Equal(t, "user-1", excludeUserID)
			return []string{"user-2", "user-3"}, nil
		},
		CreateFn: func(_ context.Context, n *models.Notification) error {
			created = append(created, *n)
			return nil
		},
	}

	service := newPetitionService(petitionRepo, userRepo, catalogRepo, notificationRepo)
	petition, err := service.Create(context.Background(), "user-1", &models.PetitionRequest{
		Description:  "fix wiring",
		ProfessionID: "prof-1",
		CityID:       "city-1",
		TypeID:       "type-1",
	})
	require.NoError(t, err)
	require.Equal(t, models.PublishedPetition, petition.State)

	require.Len(t, created, 2)
	require.Equal(t, "user-2", created[0].UserID)
	require.Equal(t, "user-3", created[1].UserID)
	require.Contains(t, created[0].Message, "Electrician")
	require.Contains(t, created[0].Message, "Rosario")
}

func TestPetitionCreateSurvivesNotificationFailure(t *testing.T) {
	userRepo := &mockUserRepo{
		GetCustomerByUserIDFn: func(_ context.Context, userID string) (*models.Customer, error) {
			return &models.Customer{ID: "cust-1", UserID: userID}, nil
		},
	}
	catalogRepo := &mockCatalogRepo{
		GetProfessionFn: func(_ context.Context, id string) (*models.Profession, error) {
			return &models.Profession{ID: id, Name: "Plumber"}, nil
		},
		GetCityFn: func(_ context.Context, id string) (*models.City, error) {
			return &models.City{ID: id, Name: "Cordoba"}, nil
		},
		GetPetitionTypeFn: func(_ context.Context, id string) (*models.PetitionType, error) {
			return &models.PetitionType{ID: id, Name: "Urgent"}, nil
		},
	}
	petitionRepo := &mockPetitionRepo{
		CreateFn: func(_ context.Context, p *models.Petition) error {
			p.ID = "pet-1"
			return nil
		},
	}
	notificationRepo := &mockNotificationRepo{
		MatchingProviderUserIDsFn: func(_ context.Context, _, _, _ string) ([]string, error) {
			return nil, context.DeadlineExceeded
		},
	}

	service := newPetitionService(petitionRepo, userRepo, catalogRepo, notificationRepo)
	petition, err := service.Create(context.Background(), "user-1", &models.PetitionRequest{
		Description:  "leaking pipe",
		ProfessionID: "prof-1",
		CityID:       "city-1",
		TypeID:       "type-1",
	})
	require.NoError(t, err)
	require.Equal(t, "pet-1", petition.ID)
}

func TestPetitionCreateRejectsProviderAccount(t *testing.T) {
	userRepo := &mockUserRepo{
		GetCustomerByUserIDFn: func(_ context.Context, _ string) (*models.Customer, error) {
			return nil, models.Forbidden("user has no customer profile")
		},
	}

	service := newPetitionService(&mockPetitionRepo{}, userRepo, &mockCatalogRepo{}, &mockNotificationRepo{})
	_, err := service.Create(context.Background(), "user-1", &models.PetitionRequest{
		Description:  "paint the fence",
		ProfessionID: "prof-1",
		CityID:       "city-1",
		TypeID:       "type-1",
	})
	require.True(t, models.IsKind(err, models.KindForbidden))
}

func TestPetitionCancelOnlyFromPublished(t *testing.T) {
	state := models.PublishedPetition
	var gotState models.PetitionState
	var gotDeleted bool

	petitionRepo := &mockPetitionRepo{
		GetWithOwnerFn: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: state}, "user-1", nil
		},
		SetStateFn: func(_ context.Context, _ string, s models.PetitionState, deleted bool) error {
			gotState = s
			gotDeleted = deleted
			return nil
		},
	}
	service := newPetitionService(petitionRepo, &mockUserRepo{}, &mockCatalogRepo{}, &mockNotificationRepo{})

	require.NoError(t, service.Cancel(context.Background(), "user-1", "pet-1"))
	require.Equal(t, models.CancelledPetition, gotState)
	require.True(t, gotDeleted)

	// Повторная отмена уже отмененной заявки отклоняется.
	state = models.CancelledPetition
	err := service.Cancel(context.Background(), "user-1", "pet-1")
	require.True(t, models.IsKind(err, models.KindInvalidState))
}

func TestPetitionCancelForeignPetition(t *testing.T) {
	petitionRepo := &mockPetitionRepo{
		GetWithOwnerFn: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.PublishedPetition}, "owner-user", nil
		},
	}
	service := newPetitionService(petitionRepo, &mockUserRepo{}, &mockCatalogRepo{}, &mockNotificationRepo{})

	err := service.Cancel(context.Background(), "intruder", "pet-1")
	require.True(t, models.IsKind(err, models.KindForbidden))
}

func TestPetitionCompleteRequiresAdjudicated(t *testing.T) {
	state := models.PublishedPetition
	petitionRepo := &mockPetitionRepo{
		GetWithOwnerFn: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: state}, "user-1", nil
		},
		SetStateFn: func(_ context.Context, _ string, s models.PetitionState, _ bool) error {
			require.Equal(t, models.FinalizedPetition, s)
			return nil
		},
	}
	service := newPetitionService(petitionRepo, &mockUserRepo{}, &mockCatalogRepo{}, &mockNotificationRepo{})

	err := service.Complete(context.Background(), "user-1", "pet-1")
	require.True(t, models.IsKind(err, models.KindInvalidState))

	state = models.AdjudicatedPetition
	require.NoError(t, service.Complete(context.Background(), "user-1", "pet-1"))
}

func TestPetitionReactivateDeadline(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	today := time.Now().UTC()
	until := &yesterday

	petitionRepo := &mockPetitionRepo{
		GetWithOwnerFn: func(_ context.Context, id string) (*models.Petition, string, error) {
			return &models.Petition{ID: id, State: models.CancelledPetition, DateUntil: until}, "user-1", nil
		},
		SetStateFn: func(_ context.Context, _ string, s models.PetitionState, deleted bool) error {
			require.Equal(t, models.PublishedPetition, s)
			require.False(t, deleted)
			return nil
		},
	}
	service := newPetitionService(petitionRepo, &mockUserRepo{}, &mockCatalogRepo{}, &mockNotificationRepo{})

	err := service.Reactivate(context.Background(), "user-1", "pet-1")
	require.True(t, models.IsKind(err, models.KindExpired))

	// Совпадение даты с дедлайном еще допускает реактивацию.
	until = &today
	require.NoError(t, service.Reactivate(context.Background(), "user-1", "pet-1"))
}
