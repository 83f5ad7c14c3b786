package dto

import "time"

// ======================
// Request DTOs
// ======================

type HandleApprovalRequest struct {
	ID              string `json:"id" form:"id"`
	Status          string `json:"status" form:"status"`
	RejectionReason string `json:"rejectionReason" form:"rejectionReason"`
}

type RemoveCreatorRequest struct {
	ID string `json:"id" form:"id"`
}

// AdminAddUserRequest - email и пароль генерируются, если не переданы
type AdminAddUserRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150,username"`
	Name     string `json:"name" form:"name" validate:"required,max=255"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" form:"password" validate:"omitempty,min=8"`

	Bio          string      `json:"bio" form:"bio"`
	Location     string      `json:"location" form:"location" validate:"max=255"`
	CreatorLevel string      `json:"creator_level" form:"creator_level" validate:"omitempty,is-creator-level"`
	Age          *FlexString `json:"age" form:"age"`
	Twitter      string      `json:"twitter" form:"twitter" validate:"max=255"`
	Instagram    string      `json:"instagram" form:"instagram" validate:"max=255"`
}

// AdminEditUserRequest - поля профиля как в CreatorEditRequest плюс
// gallery: JSON-список ссылок ({"image": ...} или строки).
type AdminEditUserRequest struct {
	Username *string     `json:"username" form:"username" validate:"omitempty,max=150,username"`
	Name     *string     `json:"name" form:"name" validate:"omitempty,max=255"`
	Gallery  *FlexString `json:"gallery" form:"gallery"`
	CreatorEditRequest
}

// ======================
// Response DTOs
// ======================

type PortfolioView struct {
	Image      string    `json:"image"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ApprovalEntry struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	UserType        string          `json:"usertype"`
	ProfileImage    string          `json:"profileImage"`
	Category        string          `json:"category"`
	Supporters      int             `json:"supporters"`
	Location        string          `json:"location"`
	CreatorLevel    string          `json:"creatorLevel"`
	Rating          float64         `json:"rating"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejectionReason"`
	JoinedDate      string          `json:"joinedDate"`
	Bio             string          `json:"bio"`
	Age             *int            `json:"age"`
	Twitter         string          `json:"twitter"`
	Instagram       string          `json:"instagram"`
	Portfolio       []PortfolioView `json:"portfolio"`
	Tiers           []TierView      `json:"tiers"`
	ReviewsCount    int64           `json:"reviews_count"`
}

type ApprovalsResponse struct {
	Pending   []ApprovalEntry `json:"pending"`
	Processed []ApprovalEntry `json:"processed"`
}

type AdminAddUserResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminEditUserResponse - состояние пользователя и профиля после правки
type AdminEditUserResponse struct {
	Username     string         `json:"username"`
	Name         string         `json:"name"`
	Bio          string         `json:"bio"`
	Location     string         `json:"location"`
	CreatorLevel string         `json:"creatorLevel"`
	Twitter      string         `json:"twitter"`
	Instagram    string         `json:"instagram"`
	Age          *int           `json:"age"`
	ProfileImage string         `json:"profileImage"`
	Gallery      []GalleryImage `json:"gallery"`
	Tiers        []TierView     `json:"tiers"`
}
