package services

import (
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// PortfolioService - галерея профиля заменяется только целиком
type PortfolioService interface {
	ReplaceGallery(db *gorm.DB, profileID string, images []string) error
	GetGallery(db *gorm.DB, profileID string) ([]models.PortfolioItem, error)
}

type PortfolioServiceImpl struct {
	portfolioRepo repositories.PortfolioRepository
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository) PortfolioService {
	return &PortfolioServiceImpl{portfolioRepo: portfolioRepo}
}

func (s *PortfolioServiceImpl) ReplaceGallery(db *gorm.DB, profileID string, images []string) error {
	if images == nil {
		images = []string{}
	}
	if err := s.portfolioRepo.ReplaceGallery(db, profileID, images); err != nil {
		return apperrorsInternal(err)
	}
	return nil
}

func (s *PortfolioServiceImpl) GetGallery(db *gorm.DB, profileID string) ([]models.PortfolioItem, error) {
	items, err := s.portfolioRepo.FindByProfile(db, profileID)
	if err != nil {
		return nil, apperrorsInternal(err)
	}
	return items, nil
}
