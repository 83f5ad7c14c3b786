package repositories

import (
	"time"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

type PortfolioRepository interface {
	// ReplaceGallery атомарно заменяет всю галерею профиля
	ReplaceGallery(db *gorm.DB, profileID string, images []string) error
	FindByProfile(db *gorm.DB, profileID string) ([]models.PortfolioItem, error)
	DeleteByProfile(db *gorm.DB, profileID string) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) ReplaceGallery(db *gorm.DB, profileID string, images []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.PortfolioItem{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}

		// Порядок отправки сохраняется и через position, и через uploaded_at
		base := time.Now().UTC()
		items := make([]models.PortfolioItem, 0, len(images))
		for i, image := range images {
			items = append(items, models.PortfolioItem{
				ProfileID:  profileID,
				Image:      image,
				Position:   i,
				UploadedAt: base.Add(time.Duration(i) * time.Microsecond),
			})
		}
		return tx.Create(&items).Error
	})
}

func (r *PortfolioRepositoryImpl) FindByProfile(db *gorm.DB, profileID string) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("profile_id = ?", profileID).
		Order("position ASC").Order("uploaded_at ASC").
		Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) DeleteByProfile(db *gorm.DB, profileID string) error {
	return db.Where("profile_id = ?", profileID).Delete(&models.PortfolioItem{}).Error
}
