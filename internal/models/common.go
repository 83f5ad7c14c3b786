package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - общий первичный ключ и временные метки.
// UUID генерируется в приложении, чтобы не зависеть от расширений конкретной СУБД.
type BaseModel struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All возвращает все модели для AutoMigrate в порядке зависимостей
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&PortfolioItem{},
		&ServiceTier{},
		&Review{},
	}
}
