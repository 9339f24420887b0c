package services

import (
	"context"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
)

// MetadataService отдает справочники для форм создания заявок и профилей.
type MetadataService struct {
	Repo repository.CatalogRepository
}

// NewMetadataService создает новый экземпляр MetadataService.
func NewMetadataService(repo repository.CatalogRepository) *MetadataService {
	return &MetadataService{Repo: repo}
}

// Professions возвращает справочник профессий.
func (s *MetadataService) Professions(ctx context.Context) ([]models.Profession, error) {
	return s.Repo.GetProfessions(ctx)
}

// Cities возвращает справочник городов.
func (s *MetadataService) Cities(ctx context.Context) ([]models.City, error) {
	return s.Repo.GetCities(ctx)
}

// PetitionTypes возвращает справочник типов заявок.
func (s *MetadataService) PetitionTypes(ctx context.Context) ([]models.PetitionType, error) {
	return s.Repo.GetPetitionTypes(ctx)
}
