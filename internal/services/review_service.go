package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/algorithms"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReviewService ведет отзывы и является единственным местом, где меняется рейтинг профиля
type ReviewService interface {
	CreateReview(ctx context.Context, db *gorm.DB, authorID string, req *dto.CreateReviewRequest) (*dto.CreateReviewResponse, error)
	// RecordReview добавляет отзыв и обновляет рейтинг скользящим средним под блокировкой профиля
	RecordReview(db *gorm.DB, profileID, authorID, text string, stars *int) (*models.Review, decimal.Decimal, error)
	// RecomputeRating пересчитывает рейтинг по всем оценкам, когда отзывы профиля были удалены
	RecomputeRating(db *gorm.DB, profileID string) error
}

type ReviewServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	reviewRepo  repositories.ReviewRepository
	publisher   events.Publisher
}

func NewReviewService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	publisher events.Publisher,
) ReviewService {
	return &ReviewServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
		publisher:   publisher,
	}
}

func (s *ReviewServiceImpl) CreateReview(ctx context.Context, db *gorm.DB, authorID string, req *dto.CreateReviewRequest) (*dto.CreateReviewResponse, error) {
	username := strings.TrimSpace(req.CreatorUsername)
	content := strings.TrimSpace(req.Content)
	if username == "" || content == "" {
		return nil, apperrors.ErrReviewFieldsRequired
	}

	stars, err := normalizeStars(req.Stars)
	if err != nil {
		return nil, err
	}

	var (
		review  *models.Review
		rating  decimal.Decimal
		creator *models.User
	)
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		creator, err = s.userRepo.FindByUsername(tx, username)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrCreatorNotFound
			}
			return err
		}
		if !creator.IsCreator() {
			return apperrors.ErrCreatorNotFound
		}

		profile, err := s.profileRepo.FindByUserID(tx, creator.ID)
		if err != nil {
			return err
		}

		review, rating, err = s.RecordReview(tx, profile.ID, authorID, content, stars)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Review created",
		"review_id", review.ID,
		"profile_id", review.ProfileID,
		"starred", stars != nil,
	)

	s.publish(ctx, events.ReviewCreated, events.ReviewCreatedPayload{
		ReviewID:        review.ID,
		ProfileID:       review.ProfileID,
		CreatorUsername: creator.Username,
		AuthorID:        authorID,
		Stars:           stars,
		Rating:          ratingFloat(rating),
	})

	return &dto.CreateReviewResponse{
		Message: "Review created successfully.",
		Review:  reviewView(review),
	}, nil
}

func (s *ReviewServiceImpl) RecordReview(db *gorm.DB, profileID, authorID, text string, stars *int) (*models.Review, decimal.Decimal, error) {
	var (
		review *models.Review
		rating decimal.Decimal
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		author, err := s.userRepo.FindByID(tx, authorID)
		if err != nil {
			return err
		}

		// Блокировка строки профиля сериализует конкурентные отзывы одного креатора
		profile, err := s.profileRepo.FindByIDForUpdate(tx, profileID)
		if err != nil {
			return err
		}

		review = &models.Review{
			ProfileID: profile.ID,
			AuthorID:  author.ID,
			Content:   text,
			Stars:     stars,
		}
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			return err
		}
		review.Author = author

		rating = profile.Rating
		if stars == nil {
			return nil
		}

		count, err := s.reviewRepo.CountStarred(tx, profile.ID)
		if err != nil {
			return err
		}
		rating = algorithms.NextRating(profile.Rating, count, *stars)
		return s.profileRepo.UpdateRating(tx, profile.ID, rating)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return review, rating, nil
}

func (s *ReviewServiceImpl) RecomputeRating(db *gorm.DB, profileID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.profileRepo.FindByIDForUpdate(tx, profileID); err != nil {
			return err
		}
		stars, err := s.reviewRepo.StarsByProfile(tx, profileID)
		if err != nil {
			return err
		}
		return s.profileRepo.UpdateRating(tx, profileID, algorithms.Mean(stars))
	})
}

func (s *ReviewServiceImpl) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		logger.CtxWithError(ctx, "Failed to publish event", err, "key", key)
	}
}

// normalizeStars: 0 и null - отзыв без оценки
func normalizeStars(stars *int) (*int, error) {
	if stars == nil || *stars == 0 {
		return nil, nil
	}
	if *stars < 1 || *stars > 5 {
		return nil, apperrors.ErrInvalidStars
	}
	v := *stars
	return &v, nil
}
