package dto

import (
	"encoding/json"
	"time"
)

// ======================
// Request DTOs
// ======================

// CreatorSetupRequest - формы используют ключи profile[...], JSON - плоские ключи.
// ProfileImage и PortfolioImages - ссылки на уже сохраненные изображения;
// загруженные файлы хендлер превращает в такие ссылки сам.
type CreatorSetupRequest struct {
	Bio             string      `json:"bio" form:"profile[bio]"`
	Location        string      `json:"location" form:"profile[location]" validate:"max=255"`
	CreatorLevel    string      `json:"creatorLevel" form:"profile[creatorLevel]" validate:"omitempty,is-creator-level"`
	Twitter         string      `json:"twitter" form:"profile[twitter]" validate:"max=255"`
	Instagram       string      `json:"instagram" form:"profile[instagram]" validate:"max=255"`
	Age             *FlexString `json:"age" form:"profile[age]"`
	Tiers           *FlexString `json:"tiers" form:"tiers"`
	ProfileImage    string      `json:"profileImage" form:"-" validate:"max=1024"`
	PortfolioImages []string    `json:"portfolioImages" form:"-" validate:"omitempty,dive,required,max=1024"`
}

// CreatorEditRequest - меняются только переданные поля
type CreatorEditRequest struct {
	Bio             *string     `json:"bio" form:"bio"`
	Location        *string     `json:"location" form:"location" validate:"omitempty,max=255"`
	CreatorLevel    *string     `json:"creatorLevel" form:"creatorLevel" validate:"omitempty,is-creator-level"`
	Twitter         *string     `json:"twitter" form:"twitter" validate:"omitempty,max=255"`
	Instagram       *string     `json:"instagram" form:"instagram" validate:"omitempty,max=255"`
	Age             *FlexString `json:"age" form:"age"`
	Tiers           *FlexString `json:"tiers" form:"tiers"`
	ProfileImage    *string     `json:"profileImage" form:"-" validate:"omitempty,max=1024"`
	PortfolioImages []string    `json:"portfolioImages" form:"-" validate:"omitempty,dive,required,max=1024"`
}

// TierInput - элемент JSON-массива tiers. Price допускает число или строку.
type TierInput struct {
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Benefits    []string        `json:"benefits"`
}

// ======================
// Response DTOs
// ======================

type CreatorSummary struct {
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	ProfileImage string  `json:"profileImage"`
	Category     string  `json:"category"`
	Supporters   int     `json:"supporters"`
	Location     string  `json:"location"`
	CreatorLevel string  `json:"creatorLevel"`
	Rating       float64 `json:"rating"`
	Age          *int    `json:"age"`
}

type CreatorListResponse struct {
	Creators []CreatorSummary `json:"creators"`
}

type GalleryImage struct {
	Image string `json:"image"`
}

type TierView struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	Popular     bool     `json:"popular"`
}

type CreatorDetail struct {
	Name         string         `json:"name"`
	Username     string         `json:"username"`
	ProfileImage string         `json:"profileImage"`
	CreatorLevel string         `json:"creatorLevel"`
	Location     string         `json:"location"`
	Tagline      string         `json:"tagline"`
	Description  string         `json:"description"`
	Age          *int           `json:"age"`
	JoinedDate   string         `json:"joinedDate"`
	Gallery      []GalleryImage `json:"gallery"`
	Tiers        []TierView     `json:"tiers"`
	Reviews      []ReviewView   `json:"reviews"`
	Rating       float64        `json:"rating"`
}

type ReviewAuthor struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type ReviewView struct {
	ID         string       `json:"id"`
	User       ReviewAuthor `json:"user"`
	ReviewText string       `json:"review_text"`
	Stars      *int         `json:"stars"`
	CreatedAt  time.Time    `json:"created_at"`
}
