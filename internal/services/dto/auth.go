package dto

// ======================
// Request DTOs
// ======================

type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Username string `json:"username" form:"username" validate:"required,max=150,username"`
	Name     string `json:"name" form:"name" validate:"required,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	UserType string `json:"usertype" form:"usertype" validate:"omitempty,is-signup-role"`
}

type TokenRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

// ======================
// Response DTOs
// ======================

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	UserType string `json:"usertype"`
}

type ProfileSetupInfo struct {
	HasProfileSetup bool    `json:"has_profile_setup"`
	Status          *string `json:"status"`
}

type CurrentUserResponse struct {
	User    UserInfo          `json:"user"`
	Profile *ProfileSetupInfo `json:"profile"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
