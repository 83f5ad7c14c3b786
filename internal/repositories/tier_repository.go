package repositories

import (
	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

type TierRepository interface {
	// ReplaceTiers атомарно заменяет все тарифы профиля
	ReplaceTiers(db *gorm.DB, profileID string, tiers []models.ServiceTier) error
	FindByProfile(db *gorm.DB, profileID string) ([]models.ServiceTier, error)
	DeleteByProfile(db *gorm.DB, profileID string) error
}

type TierRepositoryImpl struct{}

func NewTierRepository() TierRepository {
	return &TierRepositoryImpl{}
}

func (r *TierRepositoryImpl) ReplaceTiers(db *gorm.DB, profileID string, tiers []models.ServiceTier) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.ServiceTier{}).Error; err != nil {
			return err
		}
		if len(tiers) == 0 {
			return nil
		}

		rows := make([]models.ServiceTier, len(tiers))
		for i, t := range tiers {
			rows[i] = t
			rows[i].ID = ""
			rows[i].ProfileID = profileID
			rows[i].Position = i
			if rows[i].Benefits == nil {
				if err := rows[i].SetBenefits(nil); err != nil {
					return err
				}
			}
		}
		return tx.Create(&rows).Error
	})
}

func (r *TierRepositoryImpl) FindByProfile(db *gorm.DB, profileID string) ([]models.ServiceTier, error) {
	var tiers []models.ServiceTier
	err := db.Where("profile_id = ?", profileID).Order("position ASC").Find(&tiers).Error
	return tiers, err
}

func (r *TierRepositoryImpl) DeleteByProfile(db *gorm.DB, profileID string) error {
	return db.Where("profile_id = ?", profileID).Delete(&models.ServiceTier{}).Error
}
