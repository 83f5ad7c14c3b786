package services

import (
	"errors"
	"strings"

	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CreatorService собирает публичные представления креаторов (только чтение)
type CreatorService interface {
	ListApprovedCreators(db *gorm.DB) (*dto.CreatorListResponse, error)
	GetCreatorDetail(db *gorm.DB, username string) (*dto.CreatorDetail, error)
}

type CreatorServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	reviewRepo       repositories.ReviewRepository
	portfolioService PortfolioService
	tierService      TierService
}

func NewCreatorService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	portfolioService PortfolioService,
	tierService TierService,
) CreatorService {
	return &CreatorServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		reviewRepo:       reviewRepo,
		portfolioService: portfolioService,
		tierService:      tierService,
	}
}

func (s *CreatorServiceImpl) ListApprovedCreators(db *gorm.DB) (*dto.CreatorListResponse, error) {
	profiles, err := s.profileRepo.FindApprovedCreators(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	creators := make([]dto.CreatorSummary, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if p.User == nil {
			continue
		}
		creators = append(creators, dto.CreatorSummary{
			Username:     p.User.Username,
			Name:         p.User.Name,
			ProfileImage: p.ProfileImage,
			Location:     p.Location,
			CreatorLevel: string(p.CreatorLevel),
			Rating:       ratingFloat(p.Rating),
			Age:          p.Age,
		})
	}
	return &dto.CreatorListResponse{Creators: creators}, nil
}

func (s *CreatorServiceImpl) GetCreatorDetail(db *gorm.DB, username string) (*dto.CreatorDetail, error) {
	user, err := s.userRepo.FindByUsername(db, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	gallery, err := s.portfolioService.GetGallery(db, profile.ID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.tierService.GetTiers(db, profile.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByProfile(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	reviewViews := make([]dto.ReviewView, 0, len(reviews))
	for i := range reviews {
		reviewViews = append(reviewViews, reviewView(&reviews[i]))
	}

	return &dto.CreatorDetail{
		Name:         user.Name,
		Username:     user.Username,
		ProfileImage: profile.ProfileImage,
		CreatorLevel: string(profile.CreatorLevel),
		Location:     profile.Location,
		Description:  profile.Bio,
		Age:          profile.Age,
		JoinedDate:   user.CreatedAt.Format(publicJoinedDateLayout),
		Gallery:      galleryImages(gallery),
		Tiers:        tierViews(tiers),
		Reviews:      reviewViews,
		Rating:       ratingFloat(profile.Rating),
	}, nil
}
