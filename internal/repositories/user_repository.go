package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	UsernameExists(db *gorm.DB, username, excludeID string) (bool, error)
	UpdateIdentity(db *gorm.DB, userID, username, name string) error
	DeleteUser(db *gorm.DB, userID string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db.Where("id = ?", id))
}

// FindByEmail - поиск без учета регистра
func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db.Where("LOWER(email) = LOWER(?)", email))
}

// FindByUsername - поиск без учета регистра
func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	return r.findOne(db.Where("LOWER(username) = LOWER(?)", username))
}

func (r *UserRepositoryImpl) findOne(q *gorm.DB) (*models.User, error) {
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

// UsernameExists - excludeID позволяет переименовать пользователя, не конфликтуя с самим собой
func (r *UserRepositoryImpl) UsernameExists(db *gorm.DB, username, excludeID string) (bool, error) {
	var count int64
	q := db.Model(&models.User{}).Where("LOWER(username) = LOWER(?)", username)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) UpdateIdentity(db *gorm.DB, userID, username, name string) error {
	err := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"username": username, "name": name}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) DeleteUser(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
