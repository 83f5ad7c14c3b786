package models

import "time"

// PortfolioItem - одно изображение галереи. Набор заменяется целиком.
type PortfolioItem struct {
	BaseModel
	ProfileID  string    `gorm:"size:36;not null;index" json:"profile_id"`
	Image      string    `gorm:"size:1024;not null" json:"image"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
}
