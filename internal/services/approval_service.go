package services

import (
	"context"
	"errors"
	"strings"

	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ApprovalService - модерация профилей креаторов: pending -> approved | rejected.
// Решение можно менять повторно.
type ApprovalService interface {
	SetStatus(db *gorm.DB, profileID string, status models.ProfileStatus, reason string) error
	HandleApproval(ctx context.Context, db *gorm.DB, req *dto.HandleApprovalRequest) (*dto.ApprovalsResponse, error)
	ListByStatus(db *gorm.DB) (*dto.ApprovalsResponse, error)
}

type ApprovalServiceImpl struct {
	userRepo            repositories.UserRepository
	profileRepo         repositories.ProfileRepository
	reviewRepo          repositories.ReviewRepository
	notificationService NotificationService
	publisher           events.Publisher
}

func NewApprovalService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	notificationService NotificationService,
	publisher events.Publisher,
) ApprovalService {
	return &ApprovalServiceImpl{
		userRepo:            userRepo,
		profileRepo:         profileRepo,
		reviewRepo:          reviewRepo,
		notificationService: notificationService,
		publisher:           publisher,
	}
}

// SetStatus сохраняет решение. Причина отказа хранится только у отклоненных профилей.
func (s *ApprovalServiceImpl) SetStatus(db *gorm.DB, profileID string, status models.ProfileStatus, reason string) error {
	if !status.IsDecision() {
		return apperrors.ErrInvalidApprovalStatus
	}
	if status == models.ProfileStatusApproved {
		reason = ""
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.profileRepo.FindByIDForUpdate(tx, profileID); err != nil {
			return handleRepoError(err)
		}
		if err := s.profileRepo.UpdateStatus(tx, profileID, status, strings.TrimSpace(reason)); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *ApprovalServiceImpl) HandleApproval(ctx context.Context, db *gorm.DB, req *dto.HandleApprovalRequest) (*dto.ApprovalsResponse, error) {
	status := models.ProfileStatus(req.Status)
	if strings.TrimSpace(req.ID) == "" || !status.IsDecision() {
		return nil, apperrors.ErrInvalidApprovalStatus
	}

	user, err := s.userRepo.FindByID(db, req.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := s.SetStatus(db, profile.ID, status, req.RejectionReason); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Creator status changed", "user_id", user.ID, "status", status)

	reason := ""
	if status == models.ProfileStatusRejected {
		reason = strings.TrimSpace(req.RejectionReason)
	}
	s.notificationService.NotifyApprovalDecision(ctx, user, status, reason)
	if err := s.publisher.Publish(ctx, events.CreatorStatusChanged, events.CreatorStatusChangedPayload{
		UserID:   user.ID,
		Username: user.Username,
		Status:   string(status),
		Reason:   reason,
	}); err != nil {
		logger.CtxWithError(ctx, "Failed to publish event", err, "key", events.CreatorStatusChanged)
	}

	return s.ListByStatus(db)
}

func (s *ApprovalServiceImpl) ListByStatus(db *gorm.DB) (*dto.ApprovalsResponse, error) {
	pending, err := s.profileRepo.FindByStatuses(db, models.ProfileStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	processed, err := s.profileRepo.FindByStatuses(db, models.ProfileStatusApproved, models.ProfileStatusRejected)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(pending)+len(processed))
	for _, p := range pending {
		ids = append(ids, p.ID)
	}
	for _, p := range processed {
		ids = append(ids, p.ID)
	}
	counts, err := s.reviewRepo.CountByProfiles(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ApprovalsResponse{
		Pending:   approvalEntries(pending, counts),
		Processed: approvalEntries(processed, counts),
	}, nil
}

func approvalEntries(profiles []models.Profile, counts map[string]int64) []dto.ApprovalEntry {
	entries := make([]dto.ApprovalEntry, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if p.User == nil {
			continue
		}

		portfolio := make([]dto.PortfolioView, 0, len(p.Portfolio))
		for _, item := range p.Portfolio {
			portfolio = append(portfolio, dto.PortfolioView{Image: item.Image, UploadedAt: item.UploadedAt})
		}

		entries = append(entries, dto.ApprovalEntry{
			ID:              p.User.ID,
			Username:        p.User.Username,
			Name:            p.User.Name,
			Email:           p.User.Email,
			UserType:        string(p.User.Role),
			ProfileImage:    p.ProfileImage,
			Location:        p.Location,
			CreatorLevel:    string(p.CreatorLevel),
			Rating:          ratingFloat(p.Rating),
			Status:          string(p.Status),
			RejectionReason: p.RejectionReason,
			JoinedDate:      p.User.CreatedAt.Format(adminJoinedDateLayout),
			Bio:             p.Bio,
			Age:             p.Age,
			Twitter:         p.Twitter,
			Instagram:       p.Instagram,
			Portfolio:       portfolio,
			Tiers:           tierViews(p.Tiers),
			ReviewsCount:    counts[p.ID],
		})
	}
	return entries
}
