package helpers

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"creatorhub_backend/internal/database"
	"creatorhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword - пароль всех пользователей, созданных хелперами
const DefaultPassword = "password123"

var seq atomic.Int64

// NewTestDB открывает отдельную sqlite-базу во временном каталоге теста.
// Одно соединение: конкурентные транзакции выстраиваются в очередь, как под блокировкой строки.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := database.Connect(database.Options{
		Driver:       "sqlite",
		DSN:          dsn,
		Env:          "test",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "Не удалось выполнить AutoMigrate")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// UniqueUsername возвращает имя пользователя, не повторяющееся в рамках прогона
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, seq.Add(1))
}

// CreateUser создает активного пользователя с паролем DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        username + "@test.com",
		Username:     username,
		Name:         "Test " + username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "Не удалось создать пользователя %s", username)
	return user
}

// CreateCreator создает креатора с профилем в заданном статусе
func CreateCreator(t *testing.T, db *gorm.DB, username string, status models.ProfileStatus) (*models.User, *models.Profile) {
	t.Helper()

	user := CreateUser(t, db, username, models.UserRoleCreator)
	profile := models.NewPendingProfile(user.ID)
	profile.Status = status
	profile.Bio = "bio of " + username
	profile.Location = "Almaty"
	require.NoError(t, db.Create(profile).Error, "Не удалось создать профиль %s", username)
	return user, profile
}

// ProfileRating читает текущий рейтинг профиля из БД
func ProfileRating(t *testing.T, db *gorm.DB, profileID string) decimal.Decimal {
	t.Helper()

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", profileID).Error)
	return profile.Rating
}
