package services

import (
	"context"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/utils"
)

// GradeService содержит методы для взаимных оценок по завершенным заявкам.
type GradeService struct {
	Repo            repository.GradeRepository
	PetitionRepo    repository.PetitionRepository
	PostulationRepo repository.PostulationRepository
	UserRepo        repository.UserRepository
}

// NewGradeService создает новый экземпляр GradeService.
func NewGradeService(repo repository.GradeRepository, petitionRepo repository.PetitionRepository,
	postulationRepo repository.PostulationRepository, userRepo repository.UserRepository) *GradeService {
	return &GradeService{
		Repo:            repo,
		PetitionRepo:    petitionRepo,
		PostulationRepo: postulationRepo,
		UserRepo:        userRepo,
	}
}

// RateProvider сохраняет оценку исполнителя клиентом. Оценить можно только
// исполнителя, победившего именно в этой заявке, начиная с момента аджюдикации.
func (s *GradeService) RateProvider(ctx context.Context, userID string, req *models.RateRequest) (*models.Grade, error) {
	if err := validateRateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.UserRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	petition, err := s.PetitionRepo.GetByID(ctx, req.PetitionID)
	if err != nil {
		return nil, err
	}
	if petition.CustomerID != customer.ID {
		return nil, models.Forbidden("petition belongs to another customer")
	}
	if petition.State != models.AdjudicatedPetition && petition.State != models.FinalizedPetition {
		return nil, models.InvalidState("petition has no selected provider to rate")
	}

	if _, err = s.UserRepo.GetProviderByID(ctx, req.TargetID); err != nil {
		return nil, err
	}
	won, err := s.PostulationRepo.HasWinningPostulation(ctx, petition.ID, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, models.InvalidState("provider was not selected for this petition")
	}

	exists, err := s.Repo.HasProviderGrade(ctx, petition.ID, customer.ID, req.TargetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.Conflict("this petition has already been rated")
	}

	grade := &models.Grade{
		PetitionID: petition.ID,
		CustomerID: customer.ID,
		ProviderID: req.TargetID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err = s.Repo.CreateProviderGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// RateCustomer сохраняет оценку клиента исполнителем.
// Оценивать клиента может только победивший в заявке исполнитель.
func (s *GradeService) RateCustomer(ctx context.Context, userID string, req *models.RateRequest) (*models.Grade, error) {
	if err := validateRateRequest(req); err != nil {
		return nil, err
	}

	provider, err := s.UserRepo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	petition, err := s.PetitionRepo.GetByID(ctx, req.PetitionID)
	if err != nil {
		return nil, err
	}
	if petition.State != models.AdjudicatedPetition && petition.State != models.FinalizedPetition {
		return nil, models.InvalidState("petition has no selected provider")
	}
	if petition.CustomerID != req.TargetID {
		return nil, models.BadRequest("target customer does not own this petition")
	}
	if _, err = s.UserRepo.GetCustomerByID(ctx, req.TargetID); err != nil {
		return nil, err
	}

	won, err := s.PostulationRepo.HasWinningPostulation(ctx, petition.ID, provider.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, models.Forbidden("only the selected provider can rate the customer")
	}

	exists, err := s.Repo.HasCustomerGrade(ctx, petition.ID, req.TargetID, provider.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.Conflict("this petition has already been rated")
	}

	grade := &models.Grade{
		PetitionID: petition.ID,
		CustomerID: req.TargetID,
		ProviderID: provider.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err = s.Repo.CreateCustomerGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// ProviderReviews возвращает видимые отзывы об исполнителе.
func (s *GradeService) ProviderReviews(ctx context.Context, providerID, limitStr, offsetStr string) ([]models.ReviewResponse, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	if _, err = s.UserRepo.GetProviderByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.Repo.ProviderReviews(ctx, providerID, limit, offset)
}

// HasRatedProvider сообщает, оценил ли уже клиент исполнителя по заявке.
func (s *GradeService) HasRatedProvider(ctx context.Context, userID, petitionID, providerID string) (bool, error) {
	customer, err := s.UserRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.Repo.HasProviderGrade(ctx, petitionID, customer.ID, providerID)
}

func validateRateRequest(req *models.RateRequest) error {
	if req.TargetID == "" || req.PetitionID == "" {
		return models.BadRequest("targetId and petitionId are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return models.BadRequest("rating must be between 1 and 5")
	}
	return nil
}
