package services

import (
	"context"

	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
)

// NotificationService отправляет письма о решениях модерации.
// Ошибки доставки логируются и не влияют на результат операции.
type NotificationService interface {
	NotifyApprovalDecision(ctx context.Context, user *models.User, status models.ProfileStatus, reason string)
}

type NotificationServiceImpl struct {
	emailProvider email.Provider
}

func NewNotificationService(emailProvider email.Provider) NotificationService {
	return &NotificationServiceImpl{emailProvider: emailProvider}
}

func (s *NotificationServiceImpl) NotifyApprovalDecision(ctx context.Context, user *models.User, status models.ProfileStatus, reason string) {
	var (
		subject  string
		template string
	)
	switch status {
	case models.ProfileStatusApproved:
		subject = "Your creator profile has been approved"
		template = email.TemplateCreatorApproved
	case models.ProfileStatusRejected:
		subject = "Your creator profile was not approved"
		template = email.TemplateCreatorRejected
	default:
		return
	}

	data := email.TemplateData{
		"Name":     user.Name,
		"Username": user.Username,
		"Reason":   reason,
	}
	if err := s.emailProvider.SendTemplate([]string{user.Email}, subject, template, data); err != nil {
		logger.CtxWithError(ctx, "Failed to send approval email", err, "user_id", user.ID, "status", status)
		return
	}
	logger.CtxDebug(ctx, "Approval email sent", "user_id", user.ID, "status", status)
}
