package repositories

import (
	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	CountStarred(db *gorm.DB, profileID string) (int64, error)
	FindByProfile(db *gorm.DB, profileID string) ([]models.Review, error)
	CountByProfiles(db *gorm.DB, profileIDs []string) (map[string]int64, error)
	DeleteByProfileOrAuthor(db *gorm.DB, profileID, authorID string) error
	FindProfileIDsByAuthor(db *gorm.DB, authorID string) ([]string, error)
	StarsByProfile(db *gorm.DB, profileID string) ([]int, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// CreateReview выдает отзыву следующий Seq профиля.
// Вызывающий держит блокировку строки профиля, иначе два отзыва получат один номер.
func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	var last int64
	err := db.Model(&models.Review{}).
		Where("profile_id = ?", review.ProfileID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}
	review.Seq = last + 1
	return db.Create(review).Error
}

// CountStarred - количество отзывов профиля с оценкой
func (r *ReviewRepositoryImpl) CountStarred(db *gorm.DB, profileID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("profile_id = ? AND stars IS NOT NULL", profileID).
		Count(&count).Error
	return count, err
}

// FindByProfile - отзывы с автором, новые первыми
func (r *ReviewRepositoryImpl) FindByProfile(db *gorm.DB, profileID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Author").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").Order("seq DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) CountByProfiles(db *gorm.DB, profileIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(profileIDs))
	if len(profileIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProfileID string
		Total     int64
	}
	err := db.Model(&models.Review{}).
		Select("profile_id, COUNT(*) AS total").
		Where("profile_id IN ?", profileIDs).
		Group("profile_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProfileID] = row.Total
	}
	return counts, nil
}

// DeleteByProfileOrAuthor удаляет отзывы о профиле и отзывы, написанные пользователем
func (r *ReviewRepositoryImpl) DeleteByProfileOrAuthor(db *gorm.DB, profileID, authorID string) error {
	return db.Where("profile_id = ? OR author_id = ?", profileID, authorID).Delete(&models.Review{}).Error
}

// FindProfileIDsByAuthor - профили, о которых пользователь оставлял отзывы
func (r *ReviewRepositoryImpl) FindProfileIDsByAuthor(db *gorm.DB, authorID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Review{}).
		Where("author_id = ?", authorID).
		Distinct().Pluck("profile_id", &ids).Error
	return ids, err
}

// StarsByProfile - все оценки профиля в порядке создания
func (r *ReviewRepositoryImpl) StarsByProfile(db *gorm.DB, profileID string) ([]int, error) {
	var stars []int
	err := db.Model(&models.Review{}).
		Where("profile_id = ? AND stars IS NOT NULL", profileID).
		Order("created_at ASC").
		Pluck("stars", &stars).Error
	return stars, err
}
