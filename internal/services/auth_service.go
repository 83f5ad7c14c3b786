package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenPairResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AccessTokenResponse, error)
	CurrentUser(db *gorm.DB, userID string) (*dto.CurrentUserResponse, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	tokenManager *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokenManager *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		tokenManager: tokenManager,
	}
}

// Register - регистрация. Креатору сразу создается профиль в статусе pending.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) error {
	role := models.UserRole(req.UserType)
	if role == "" {
		role = models.UserRoleSupporter
	}
	if role != models.UserRoleCreator && role != models.UserRoleSupporter {
		return apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := ensureIdentityFree(tx, s.userRepo, user.Email, user.Username); err != nil {
			return err
		}
		if err := s.userRepo.CreateUser(tx, user); err != nil {
			return err
		}
		if user.IsCreator() {
			return s.profileRepo.CreateProfile(tx, models.NewPendingProfile(user.ID))
		}
		return nil
	})
	if err != nil {
		// гонка двух регистраций: уникальный индекс сработал после проверки
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return duplicateIdentityError(db, s.userRepo, user.Email)
		}
		return handleRepoError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.TokenRequest) (*dto.TokenPairResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

// Refresh перечитывает пользователя, чтобы новый access-токен нес актуальную роль
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AccessTokenResponse, error) {
	claims, err := s.tokenManager.ParseToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AccessTokenResponse{Access: access}, nil
}

func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, userID string) (*dto.CurrentUserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	resp := &dto.CurrentUserResponse{
		User: dto.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Name:     user.Name,
			UserType: string(user.Role),
		},
	}
	if !user.IsCreator() {
		return resp, nil
	}

	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		resp.Profile = &dto.ProfileSetupInfo{HasProfileSetup: false}
	case err != nil:
		return nil, apperrors.InternalError(err)
	default:
		status := string(profile.Status)
		resp.Profile = &dto.ProfileSetupInfo{HasProfileSetup: profile.HasSetup(), Status: &status}
	}
	return resp, nil
}

// ensureIdentityFree - сначала email, затем username, как и сообщает клиенту API
func ensureIdentityFree(db *gorm.DB, userRepo repositories.UserRepository, email, username string) error {
	exists, err := userRepo.EmailExists(db, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	exists, err = userRepo.UsernameExists(db, username, "")
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrUsernameAlreadyExists
	}
	return nil
}

func duplicateIdentityError(db *gorm.DB, userRepo repositories.UserRepository, email string) error {
	if exists, err := userRepo.EmailExists(db, email); err == nil && exists {
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.ErrUsernameAlreadyExists
}
