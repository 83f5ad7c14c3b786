package models

import (
	"github.com/shopspring/decimal"
)

// Profile - расширение пользователя-креатора (один к одному с User).
// Rating меняется только агрегатором отзывов.
type Profile struct {
	BaseModel
	UserID          string          `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Age             *int            `json:"age"`
	Rating          decimal.Decimal `gorm:"type:decimal(3,2);not null" json:"rating"`
	Bio             string          `gorm:"type:text" json:"bio"`
	Location        string          `gorm:"size:255" json:"location"`
	ProfileImage    string          `gorm:"size:1024" json:"profile_image"`
	CreatorLevel    CreatorLevel    `gorm:"size:20;not null;default:'Normal'" json:"creator_level"`
	Status          ProfileStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason"`
	Twitter         string          `gorm:"size:255" json:"twitter"`
	Instagram       string          `gorm:"size:255" json:"instagram"`

	Portfolio []PortfolioItem `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"portfolio,omitempty"`
	Tiers     []ServiceTier   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"tiers,omitempty"`
	Reviews   []Review        `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// HasSetup - креатор заполнил хотя бы одно из ключевых полей
func (p *Profile) HasSetup() bool {
	return p.Bio != "" || p.ProfileImage != "" || p.Location != ""
}

// NewPendingProfile - профиль по умолчанию для нового креатора
func NewPendingProfile(userID string) *Profile {
	return &Profile{
		UserID:       userID,
		Rating:       decimal.Zero,
		CreatorLevel: CreatorLevelNormal,
		Status:       ProfileStatusPending,
	}
}
