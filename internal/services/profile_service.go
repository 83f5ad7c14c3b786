package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var errCreatorsOnly = apperrors.NewForbiddenError("Only creators can manage a creator profile.")

type ProfileService interface {
	// SetupProfile создает профиль при необходимости, заменяет галерею и тарифы
	SetupProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorSetupRequest) error
	// EditProfile меняет только переданные поля
	EditProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorEditRequest) error
}

type ProfileServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	portfolioService PortfolioService
	tierService      TierService
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	portfolioService PortfolioService,
	tierService TierService,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		portfolioService: portfolioService,
		tierService:      tierService,
	}
}

func (s *ProfileServiceImpl) SetupProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorSetupRequest) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.requireCreator(tx, userID); err != nil {
		return err
	}

	profile, err := s.getOrCreateProfile(tx, userID)
	if err != nil {
		return err
	}

	profile.Bio = req.Bio
	profile.Location = req.Location
	profile.Twitter = req.Twitter
	profile.Instagram = req.Instagram
	profile.CreatorLevel = models.CreatorLevelNormal
	if req.CreatorLevel != "" {
		profile.CreatorLevel = models.CreatorLevel(req.CreatorLevel)
	}
	if age, ok := parseAge(req.Age); ok {
		profile.Age = age
	}
	if req.ProfileImage != "" {
		profile.ProfileImage = req.ProfileImage
	}

	if err := s.profileRepo.UpdateProfile(tx, profile); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.portfolioService.ReplaceGallery(tx, profile.ID, req.PortfolioImages); err != nil {
		return err
	}
	if err := s.tierService.ReplaceTiersJSON(tx, profile.ID, req.Tiers.String()); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator profile set up", "user_id", userID, "profile_id", profile.ID)
	return nil
}

func (s *ProfileServiceImpl) EditProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatorEditRequest) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.requireCreator(tx, userID); err != nil {
		return err
	}

	profile, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return handleRepoError(err)
	}

	if err := applyProfileEdits(tx, profile, req, s.profileRepo, s.portfolioService, s.tierService); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator profile edited", "user_id", userID, "profile_id", profile.ID)
	return nil
}

func (s *ProfileServiceImpl) requireCreator(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !user.IsCreator() {
		return nil, errCreatorsOnly
	}
	return user, nil
}

func (s *ProfileServiceImpl) getOrCreateProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserIDForUpdate(db, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}

	profile = models.NewPendingProfile(userID)
	if err := s.profileRepo.CreateProfile(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// applyProfileEdits - общая часть редактирования профиля владельцем и администратором.
// Галерея заменяется только при наличии новых изображений, тарифы - только если переданы.
func applyProfileEdits(
	db *gorm.DB,
	profile *models.Profile,
	req *dto.CreatorEditRequest,
	profileRepo repositories.ProfileRepository,
	portfolioService PortfolioService,
	tierService TierService,
) error {
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.CreatorLevel != nil && strings.TrimSpace(*req.CreatorLevel) != "" {
		profile.CreatorLevel = models.CreatorLevel(*req.CreatorLevel)
	}
	if req.Twitter != nil {
		profile.Twitter = *req.Twitter
	}
	if req.Instagram != nil {
		profile.Instagram = *req.Instagram
	}
	if req.Age != nil {
		// нечисловой возраст игнорируется
		if age, ok := parseAge(req.Age); ok {
			profile.Age = age
		}
	}
	if req.ProfileImage != nil && *req.ProfileImage != "" {
		profile.ProfileImage = *req.ProfileImage
	}

	if err := profileRepo.UpdateProfile(db, profile); err != nil {
		return apperrors.InternalError(err)
	}

	if len(req.PortfolioImages) > 0 {
		if err := portfolioService.ReplaceGallery(db, profile.ID, req.PortfolioImages); err != nil {
			return err
		}
	}
	if req.Tiers != nil {
		if err := tierService.ReplaceTiersJSON(db, profile.ID, req.Tiers.String()); err != nil {
			return err
		}
	}
	return nil
}
