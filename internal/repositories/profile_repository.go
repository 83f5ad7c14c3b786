package repositories

import (
	"errors"

	"creatorhub_backend/internal/database"
	"creatorhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateProfile(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	FindByUserIDForUpdate(db *gorm.DB, userID string) (*models.Profile, error)
	FindByIDForUpdate(db *gorm.DB, profileID string) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, profile *models.Profile) error
	UpdateStatus(db *gorm.DB, profileID string, status models.ProfileStatus, reason string) error
	UpdateRating(db *gorm.DB, profileID string, rating decimal.Decimal) error
	FindApprovedCreators(db *gorm.DB) ([]models.Profile, error)
	FindByStatuses(db *gorm.DB, statuses ...models.ProfileStatus) ([]models.Profile, error)
	DeleteByUserID(db *gorm.DB, userID string) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	return r.findOne(db.Where("user_id = ?", userID))
}

// FindByUserIDForUpdate блокирует строку профиля до конца транзакции
func (r *ProfileRepositoryImpl) FindByUserIDForUpdate(db *gorm.DB, userID string) (*models.Profile, error) {
	return r.findOne(forUpdate(db).Where("user_id = ?", userID))
}

func (r *ProfileRepositoryImpl) FindByIDForUpdate(db *gorm.DB, profileID string) (*models.Profile, error) {
	return r.findOne(forUpdate(db).Where("id = ?", profileID))
}

func forUpdate(db *gorm.DB) *gorm.DB {
	if database.SupportsRowLocks(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (r *ProfileRepositoryImpl) findOne(q *gorm.DB) (*models.Profile, error) {
	var profile models.Profile
	if err := q.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile сохраняет редактируемые поля. Rating и Status здесь не пишутся.
func (r *ProfileRepositoryImpl) UpdateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Model(&models.Profile{}).Where("id = ?", profile.ID).
		Select("age", "bio", "location", "profile_image", "creator_level", "twitter", "instagram").
		Updates(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateStatus(db *gorm.DB, profileID string, status models.ProfileStatus, reason string) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).
		Updates(map[string]interface{}{"status": status, "rejection_reason": reason}).Error
}

// UpdateRating - единственная точка записи рейтинга, вызывается только агрегатором отзывов
func (r *ProfileRepositoryImpl) UpdateRating(db *gorm.DB, profileID string, rating decimal.Decimal) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).
		Update("rating", rating).Error
}

func creatorIDs(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.User{}).Select("id").Where("role = ?", models.UserRoleCreator)
}

func (r *ProfileRepositoryImpl) FindApprovedCreators(db *gorm.DB) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Preload("User").
		Where("status = ?", models.ProfileStatusApproved).
		Where("user_id IN (?)", creatorIDs(db)).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

// FindByStatuses загружает профили креаторов вместе с пользователем, галереей и тарифами
func (r *ProfileRepositoryImpl) FindByStatuses(db *gorm.DB, statuses ...models.ProfileStatus) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Preload("User").
		Preload("Portfolio", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Tiers", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("status IN ?", statuses).
		Where("user_id IN (?)", creatorIDs(db)).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
