package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	generatedPasswordLength = 12
	generatedEmailAttempts  = 20
)

// AdminService - административные операции над креаторами.
// Проверка роли выполняется один раз middleware группы /admin.
type AdminService interface {
	AddUser(ctx context.Context, db *gorm.DB, req *dto.AdminAddUserRequest) (*dto.AdminAddUserResponse, error)
	EditUser(ctx context.Context, db *gorm.DB, username string, req *dto.AdminEditUserRequest) (*dto.AdminEditUserResponse, error)
	RemoveCreator(ctx context.Context, db *gorm.DB, req *dto.RemoveCreatorRequest) error
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	portfolioRepo    repositories.PortfolioRepository
	tierRepo         repositories.TierRepository
	reviewRepo       repositories.ReviewRepository
	portfolioService PortfolioService
	tierService      TierService
	reviewService    ReviewService
	publisher        events.Publisher
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	portfolioRepo repositories.PortfolioRepository,
	tierRepo repositories.TierRepository,
	reviewRepo repositories.ReviewRepository,
	portfolioService PortfolioService,
	tierService TierService,
	reviewService ReviewService,
	publisher events.Publisher,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		portfolioRepo:    portfolioRepo,
		tierRepo:         tierRepo,
		reviewRepo:       reviewRepo,
		portfolioService: portfolioService,
		tierService:      tierService,
		reviewService:    reviewService,
		publisher:        publisher,
	}
}

// AddUser создает креатора с одобренным профилем.
// Сгенерированный пароль возвращается в ответе, администратор передает его сам.
func (s *AdminServiceImpl) AddUser(ctx context.Context, db *gorm.DB, req *dto.AdminAddUserRequest) (*dto.AdminAddUserResponse, error) {
	password := req.Password
	if password == "" {
		generated, err := auth.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		password = generated
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         models.UserRoleCreator,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if user.Email == "" {
			email, err := s.generateEmail(tx)
			if err != nil {
				return err
			}
			user.Email = email
		}
		if err := ensureIdentityFree(tx, s.userRepo, user.Email, user.Username); err != nil {
			return err
		}
		if err := s.userRepo.CreateUser(tx, user); err != nil {
			return err
		}

		profile := models.NewPendingProfile(user.ID)
		profile.Status = models.ProfileStatusApproved
		profile.Bio = req.Bio
		profile.Location = req.Location
		profile.Twitter = req.Twitter
		profile.Instagram = req.Instagram
		if req.CreatorLevel != "" {
			profile.CreatorLevel = models.CreatorLevel(req.CreatorLevel)
		}
		if age, ok := parseAge(req.Age); ok {
			profile.Age = age
		}
		return s.profileRepo.CreateProfile(tx, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, duplicateIdentityError(db, s.userRepo, user.Email)
		}
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Creator added by admin", "user_id", user.ID, "generated_password", req.Password == "")

	return &dto.AdminAddUserResponse{
		Message:  "User and profile added successfully.",
		ID:       user.ID,
		Email:    user.Email,
		Password: password,
	}, nil
}

func (s *AdminServiceImpl) generateEmail(db *gorm.DB) (string, error) {
	for i := 0; i < generatedEmailAttempts; i++ {
		n, err := auth.RandomInt(1000000)
		if err != nil {
			return "", err
		}
		email := fmt.Sprintf("user%d@example.com", n)
		exists, err := s.userRepo.EmailExists(db, email)
		if err != nil {
			return "", err
		}
		if !exists {
			return email, nil
		}
	}
	return "", errors.New("failed to generate a unique email")
}

func (s *AdminServiceImpl) EditUser(ctx context.Context, db *gorm.DB, username string, req *dto.AdminEditUserRequest) (*dto.AdminEditUserResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByUsername(tx, strings.TrimSpace(username))
	if err != nil {
		return nil, handleRepoError(err)
	}
	profile, err := s.profileRepo.FindByUserIDForUpdate(tx, user.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		newUsername := strings.TrimSpace(*req.Username)
		exists, err := s.userRepo.UsernameExists(tx, newUsername, user.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		user.Username = newUsername
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if err := s.userRepo.UpdateIdentity(tx, user.ID, user.Username, user.Name); err != nil {
		return nil, handleRepoError(err)
	}

	if err := applyProfileEdits(tx, profile, &req.CreatorEditRequest, s.profileRepo, s.portfolioService, s.tierService); err != nil {
		return nil, err
	}
	// Загруженные файлы важнее ссылок из gallery
	if len(req.PortfolioImages) == 0 && req.Gallery != nil {
		if err := s.portfolioService.ReplaceGallery(tx, profile.ID, parseGallery(req.Gallery.String())); err != nil {
			return nil, err
		}
	}

	gallery, err := s.portfolioService.GetGallery(tx, profile.ID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.tierService.GetTiers(tx, profile.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Creator edited by admin", "user_id", user.ID)

	return &dto.AdminEditUserResponse{
		Username:     user.Username,
		Name:         user.Name,
		Bio:          profile.Bio,
		Location:     profile.Location,
		CreatorLevel: string(profile.CreatorLevel),
		Twitter:      profile.Twitter,
		Instagram:    profile.Instagram,
		Age:          profile.Age,
		ProfileImage: profile.ProfileImage,
		Gallery:      galleryImages(gallery),
		Tiers:        tierViews(tiers),
	}, nil
}

// RemoveCreator удаляет креатора со всеми данными одной транзакцией.
// Профили, которым он оставлял отзывы, получают пересчитанный рейтинг.
func (s *AdminServiceImpl) RemoveCreator(ctx context.Context, db *gorm.DB, req *dto.RemoveCreatorRequest) error {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return apperrors.NewBadRequestError("Creator id required.")
	}

	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.userRepo.FindByID(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrCreatorNotFound
			}
			return err
		}
		if !user.IsCreator() {
			return apperrors.ErrCreatorNotFound
		}

		profileID := ""
		profile, err := s.profileRepo.FindByUserID(tx, user.ID)
		switch {
		case err == nil:
			profileID = profile.ID
		case !errors.Is(err, repositories.ErrProfileNotFound):
			return err
		}

		reviewed, err := s.reviewRepo.FindProfileIDsByAuthor(tx, user.ID)
		if err != nil {
			return err
		}

		if err := s.reviewRepo.DeleteByProfileOrAuthor(tx, profileID, user.ID); err != nil {
			return err
		}
		if profileID != "" {
			if err := s.portfolioRepo.DeleteByProfile(tx, profileID); err != nil {
				return err
			}
			if err := s.tierRepo.DeleteByProfile(tx, profileID); err != nil {
				return err
			}
			if err := s.profileRepo.DeleteByUserID(tx, user.ID); err != nil {
				return err
			}
		}
		if err := s.userRepo.DeleteUser(tx, user.ID); err != nil {
			return err
		}

		for _, pid := range reviewed {
			if pid == profileID {
				continue
			}
			if err := s.reviewService.RecomputeRating(tx, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Creator removed", "user_id", user.ID)
	if err := s.publisher.Publish(ctx, events.CreatorRemoved, events.CreatorRemovedPayload{
		UserID:   user.ID,
		Username: user.Username,
	}); err != nil {
		logger.CtxWithError(ctx, "Failed to publish event", err, "key", events.CreatorRemoved)
	}
	return nil
}
