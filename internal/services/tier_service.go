package services

import (
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// TierService - тарифы профиля заменяются только целиком
type TierService interface {
	ReplaceTiers(db *gorm.DB, profileID string, tiers []models.ServiceTier) error
	// ReplaceTiersJSON разбирает JSON-массив тарифов; невалидный JSON очищает тарифы
	ReplaceTiersJSON(db *gorm.DB, profileID string, raw string) error
	GetTiers(db *gorm.DB, profileID string) ([]models.ServiceTier, error)
}

type TierServiceImpl struct {
	tierRepo repositories.TierRepository
}

func NewTierService(tierRepo repositories.TierRepository) TierService {
	return &TierServiceImpl{tierRepo: tierRepo}
}

func (s *TierServiceImpl) ReplaceTiers(db *gorm.DB, profileID string, tiers []models.ServiceTier) error {
	if err := s.tierRepo.ReplaceTiers(db, profileID, tiers); err != nil {
		return apperrorsInternal(err)
	}
	return nil
}

func (s *TierServiceImpl) ReplaceTiersJSON(db *gorm.DB, profileID string, raw string) error {
	return s.ReplaceTiers(db, profileID, parseTiers(raw))
}

func (s *TierServiceImpl) GetTiers(db *gorm.DB, profileID string) ([]models.ServiceTier, error) {
	tiers, err := s.tierRepo.FindByProfile(db, profileID)
	if err != nil {
		return nil, apperrorsInternal(err)
	}
	return tiers, nil
}
