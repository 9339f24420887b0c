package services

import (
	"context"
	"time"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// PostulationService содержит методы для работы с откликами исполнителей.
type PostulationService struct {
	Repo          repository.PostulationRepository
	PetitionRepo  repository.PetitionRepository
	UserRepo      repository.UserRepository
	Notifications *NotificationService
	logger        zerolog.Logger
}

// NewPostulationService создает новый экземпляр PostulationService.
func NewPostulationService(repo repository.PostulationRepository, petitionRepo repository.PetitionRepository,
	userRepo repository.UserRepository, notifications *NotificationService, logger zerolog.Logger) *PostulationService {
	return &PostulationService{
		Repo:          repo,
		PetitionRepo:  petitionRepo,
		UserRepo:      userRepo,
		Notifications: notifications,
		logger:        logger,
	}
}

// Apply создает отклик исполнителя на опубликованную заявку.
func (s *PostulationService) Apply(ctx context.Context, userID string, req *models.PostulationRequest) (*models.Postulation, error) {
	if req.PetitionID == "" {
		return nil, models.BadRequest("petitionId is required")
	}
	if req.Description == "" {
		return nil, models.BadRequest("description is required")
	}
	if req.Budget <= 0 {
		return nil, models.BadRequest("budget must be positive")
	}

	provider, err := s.UserRepo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	petition, ownerUserID, err := s.PetitionRepo.GetWithOwner(ctx, req.PetitionID)
	if err != nil {
		return nil, err
	}
	if petition.IsDeleted || petition.State != models.PublishedPetition {
		return nil, models.InvalidState("petition is not open for postulations")
	}
	if petition.DeadlinePassed(time.Now()) {
		return nil, models.Expired("petition deadline has passed")
	}
	if ownerUserID == userID {
		return nil, models.Forbidden("you cannot apply to your own petition")
	}

	exists, err := s.Repo.ExistsForPair(ctx, petition.ID, provider.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.Conflict("you have already applied to this petition")
	}

	postulation := &models.Postulation{
		PetitionID: petition.ID,
		ProviderID: provider.ID,
		Proposal:   req.Description,
		Budget:     req.Budget,
	}
	if err = s.Repo.Create(ctx, postulation); err != nil {
		return nil, err
	}

	if err = s.Notifications.NotifyNewPostulation(ctx, ownerUserID, petition.ID, petition.Description); err != nil {
		s.logger.Error().Err(err).Str("petitionId", petition.ID).Msg("failed to notify petition owner")
	}
	return postulation, nil
}

// ListForPetition возвращает отклики по заявке; доступно только ее владельцу.
func (s *PostulationService) ListForPetition(ctx context.Context, userID, petitionID string) ([]models.PostulationResponse, error) {
	_, ownerUserID, err := s.PetitionRepo.GetWithOwner(ctx, petitionID)
	if err != nil {
		return nil, err
	}
	if ownerUserID != userID {
		return nil, models.Forbidden("petition belongs to another customer")
	}
	return s.Repo.ListForPetition(ctx, petitionID)
}

// Mine возвращает историю откликов исполнителя.
func (s *PostulationService) Mine(ctx context.Context, userID, limitStr, offsetStr string) ([]models.PostulationResponse, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	provider, err := s.UserRepo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Mine(ctx, provider.ID, limit, offset)
}

// Accept принимает отклик: победитель становится ACCEPTED, остальные
// отклики отклоняются, заявка переходит в ADJUDICATED. Уведомления
// отправляются после коммита и не влияют на исход аджюдикации.
func (s *PostulationService) Accept(ctx context.Context, userID, postulationID string) (*models.Postulation, error) {
	postulation, err := s.Repo.GetByID(ctx, postulationID)
	if err != nil {
		return nil, err
	}

	petition, ownerUserID, err := s.PetitionRepo.GetWithOwner(ctx, postulation.PetitionID)
	if err != nil {
		return nil, err
	}
	if ownerUserID != userID {
		return nil, models.Forbidden("petition belongs to another customer")
	}
	switch petition.State {
	case models.PublishedPetition:
	case models.AdjudicatedPetition:
		return nil, models.InvalidState("petition already has a selected provider")
	case models.FinalizedPetition:
		return nil, models.InvalidState("petition is already finalized")
	default:
		return nil, models.InvalidState("petition is cancelled")
	}
	if postulation.State != models.PendingPostulation {
		return nil, models.InvalidState("postulation is no longer pending")
	}

	result, err := s.Repo.Adjudicate(ctx, postulationID)
	if err != nil {
		return nil, err
	}

	if err = s.Notifications.NotifyPostulationAccepted(ctx, result.WinnerUserID,
		result.PetitionID, result.Winner.ID, petition.Description); err != nil {
		s.logger.Error().Err(err).Str("postulationId", result.Winner.ID).Msg("failed to notify winner")
	}
	for _, rejectedUserID := range result.RejectedUserIDs {
		if err = s.Notifications.NotifyPostulationRejected(ctx, rejectedUserID,
			result.PetitionID, petition.Description); err != nil {
			s.logger.Error().Err(err).Str("userId", rejectedUserID).Msg("failed to notify rejected provider")
		}
	}
	return &result.Winner, nil
}

// CheckApplied сообщает, откликался ли уже исполнитель на заявку.
func (s *PostulationService) CheckApplied(ctx context.Context, userID, petitionID string) (bool, error) {
	provider, err := s.UserRepo.GetProviderByUserID(ctx, userID)
	if err != nil {
		if models.IsKind(err, models.KindForbidden) {
			return false, nil
		}
		return false, err
	}
	return s.Repo.ExistsForPair(ctx, petitionID, provider.ID)
}
