package services

import (
	"context"
	"time"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// PetitionService содержит методы для работы с заявками клиентов.
type PetitionService struct {
	Repo          repository.PetitionRepository
	UserRepo      repository.UserRepository
	CatalogRepo   repository.CatalogRepository
	Notifications *NotificationService
	logger        zerolog.Logger
}

// NewPetitionService создает новый экземпляр PetitionService.
func NewPetitionService(repo repository.PetitionRepository, userRepo repository.UserRepository,
	catalogRepo repository.CatalogRepository, notifications *NotificationService, logger zerolog.Logger) *PetitionService {
	return &PetitionService{
		Repo:          repo,
		UserRepo:      userRepo,
		CatalogRepo:   catalogRepo,
		Notifications: notifications,
		logger:        logger,
	}
}

// Create публикует новую заявку и рассылает уведомления подходящим
// исполнителям. Сбой рассылки не отменяет создание заявки.
func (s *PetitionService) Create(ctx context.Context, userID string, req *models.PetitionRequest) (*models.Petition, error) {
	if req.Description == "" {
		return nil, models.BadRequest("description is required")
	}
	if req.ProfessionID == "" || req.CityID == "" || req.TypeID == "" {
		return nil, models.BadRequest("professionId, cityId and typeId are required")
	}
	if req.DateUntil != nil && req.DateUntil.Before(time.Now().UTC().Truncate(24*time.Hour)) {
		return nil, models.BadRequest("dateUntil cannot be in the past")
	}

	customer, err := s.UserRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profession, err := s.CatalogRepo.GetProfession(ctx, req.ProfessionID)
	if err != nil {
		return nil, err
	}
	city, err := s.CatalogRepo.GetCity(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	if _, err = s.CatalogRepo.GetPetitionType(ctx, req.TypeID); err != nil {
		return nil, err
	}

	petition := &models.Petition{
		CustomerID:   customer.ID,
		Description:  req.Description,
		ProfessionID: req.ProfessionID,
		CityID:       req.CityID,
		TypeID:       req.TypeID,
		DateUntil:    req.DateUntil,
	}
	if err = s.Repo.Create(ctx, petition); err != nil {
		return nil, err
	}

	if err = s.Notifications.NotifyMatchingProviders(ctx, petition, userID, profession.Name, city.Name); err != nil {
		s.logger.Error().Err(err).Str("petitionId", petition.ID).Msg("failed to notify matching providers")
	}
	return petition, nil
}

// Feed возвращает опубликованные заявки для ленты исполнителя.
func (s *PetitionService) Feed(ctx context.Context, userID, limitStr, offsetStr string) ([]models.PetitionResponse, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	return s.Repo.Feed(ctx, userID, limit, offset)
}

// Mine возвращает заявки самого клиента в любом статусе.
func (s *PetitionService) Mine(ctx context.Context, userID, limitStr, offsetStr string) ([]models.PetitionResponse, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	customer, err := s.UserRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Mine(ctx, customer.ID, limit, offset)
}

// GetByID возвращает заявку по id.
func (s *PetitionService) GetByID(ctx context.Context, id string) (*models.Petition, error) {
	return s.Repo.GetByID(ctx, id)
}

// Complete переводит заявку из ADJUDICATED в FINALIZED.
func (s *PetitionService) Complete(ctx context.Context, userID, petitionID string) error {
	petition, err := s.ownedPetition(ctx, userID, petitionID)
	if err != nil {
		return err
	}
	if petition.State != models.AdjudicatedPetition {
		return models.InvalidState("only an adjudicated petition can be completed")
	}
	return s.Repo.SetState(ctx, petitionID, models.FinalizedPetition, false)
}

// Cancel отменяет опубликованную заявку; отмена выполняет мягкое удаление.
func (s *PetitionService) Cancel(ctx context.Context, userID, petitionID string) error {
	petition, err := s.ownedPetition(ctx, userID, petitionID)
	if err != nil {
		return err
	}
	if petition.State != models.PublishedPetition {
		return models.InvalidState("only a published petition can be cancelled")
	}
	return s.Repo.SetState(ctx, petitionID, models.CancelledPetition, true)
}

// Reactivate возвращает отмененную заявку в ленту, если срок еще не истек.
func (s *PetitionService) Reactivate(ctx context.Context, userID, petitionID string) error {
	petition, err := s.ownedPetition(ctx, userID, petitionID)
	if err != nil {
		return err
	}
	if petition.State != models.CancelledPetition {
		return models.InvalidState("only a cancelled petition can be reactivated")
	}
	if petition.DeadlinePassed(time.Now()) {
		return models.Expired("petition deadline has passed")
	}
	return s.Repo.SetState(ctx, petitionID, models.PublishedPetition, false)
}

// ownedPetition возвращает заявку, убедившись, что она принадлежит пользователю.
func (s *PetitionService) ownedPetition(ctx context.Context, userID, petitionID string) (*models.Petition, error) {
	petition, ownerUserID, err := s.Repo.GetWithOwner(ctx, petitionID)
	if err != nil {
		return nil, err
	}
	if ownerUserID != userID {
		return nil, models.Forbidden("petition belongs to another customer")
	}
	return petition, nil
}
