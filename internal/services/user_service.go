package services

import (
	"context"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
)

// UserService содержит методы для работы с профилями пользователей.
type UserService struct {
	Repo        repository.UserRepository
	CatalogRepo repository.CatalogRepository
	GradeRepo   repository.GradeRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo repository.UserRepository, catalogRepo repository.CatalogRepository,
	gradeRepo repository.GradeRepository) *UserService {
	return &UserService{Repo: repo, CatalogRepo: catalogRepo, GradeRepo: gradeRepo}
}

// GetProfile возвращает объединенный профиль пользователя и его роли.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserProfileResponse, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfileResponse{
		ID:           user.ID,
		Name:         user.Name,
		Lastname:     user.Lastname,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}

	switch user.Role {
	case models.RoleCustomer:
		customer, err := s.Repo.GetCustomerByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.Phone = customer.Phone
	case models.RoleProvider:
		provider, err := s.Repo.GetProviderByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.Description = provider.Description
		if provider.ProfessionID != nil {
			profession, err := s.CatalogRepo.GetProfession(ctx, *provider.ProfessionID)
			if err != nil {
				return nil, err
			}
			profile.Profession = profession.Name
		}
		cities, err := s.Repo.GetProviderCityNames(ctx, provider.ID)
		if err != nil {
			return nil, err
		}
		profile.Cities = cities
		rating, _, err := s.GradeRepo.ProviderRating(ctx, provider.ID)
		if err != nil {
			return nil, err
		}
		profile.Rating = rating
	}
	return profile, nil
}

// UpdateProfile обновляет базовые и ролевые поля профиля.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.UserProfileRequest) (*models.UserProfileResponse, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Lastname != nil || req.ProfileImage != nil {
		if err = s.Repo.UpdateUser(ctx, userID, req.Name, req.Lastname, req.ProfileImage); err != nil {
			return nil, err
		}
	}

	switch user.Role {
	case models.RoleCustomer:
		if req.Phone != nil {
			customer, err := s.Repo.GetCustomerByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			if err = s.Repo.UpdateCustomer(ctx, customer.ID, req.Phone); err != nil {
				return nil, err
			}
		}
	case models.RoleProvider:
		if req.Description != nil || req.ProfessionID != nil || req.CityIDs != nil {
			provider, err := s.Repo.GetProviderByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			if req.ProfessionID != nil {
				if _, err = s.CatalogRepo.GetProfession(ctx, *req.ProfessionID); err != nil {
					return nil, err
				}
			}
			if err = s.Repo.UpdateProvider(ctx, provider.ID, req.Description, req.ProfessionID); err != nil {
				return nil, err
			}
			if req.CityIDs != nil {
				for _, cityID := range req.CityIDs {
					if _, err = s.CatalogRepo.GetCity(ctx, cityID); err != nil {
						return nil, err
					}
				}
				if err = s.Repo.SetProviderCities(ctx, provider.ID, req.CityIDs); err != nil {
					return nil, err
				}
			}
		}
	}
	return s.GetProfile(ctx, userID)
}

// Deactivate выполняет мягкое удаление учетной записи.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.Repo.Deactivate(ctx, userID)
}

// ProviderPublicProfile возвращает публичную карточку исполнителя.
func (s *UserService) ProviderPublicProfile(ctx context.Context, providerID string) (*models.ProviderPublicProfile, error) {
	provider, err := s.Repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	user, err := s.Repo.GetByID(ctx, provider.UserID)
	if err != nil {
		return nil, err
	}

	card := &models.ProviderPublicProfile{
		ProviderID:   provider.ID,
		Name:         user.Name,
		Lastname:     user.Lastname,
		ProfileImage: user.ProfileImage,
		Description:  provider.Description,
	}
	if provider.ProfessionID != nil {
		profession, err := s.CatalogRepo.GetProfession(ctx, *provider.ProfessionID)
		if err != nil {
			return nil, err
		}
		card.Profession = profession.Name
	}
	rating, count, err := s.GradeRepo.ProviderRating(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	card.Rating = rating
	card.ReviewCount = count
	return card, nil
}
