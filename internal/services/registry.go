package services

import (
	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/storage"
)

// ServiceContainer - все сервисы приложения
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	PortfolioService    PortfolioService
	TierService         TierService
	ReviewService       ReviewService
	ApprovalService     ApprovalService
	CreatorService      CreatorService
	AdminService        AdminService
	NotificationService NotificationService
	UploadService       UploadService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	TokenManager *auth.TokenManager
	Storage      storage.Storage
	Email        email.Provider
	Events       events.Publisher
	Upload       UploadConfig
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	tierRepo := repositories.NewTierRepository()
	reviewRepo := repositories.NewReviewRepository()

	portfolioService := NewPortfolioService(portfolioRepo)
	tierService := NewTierService(tierRepo)
	notificationService := NewNotificationService(deps.Email)
	reviewService := NewReviewService(userRepo, profileRepo, reviewRepo, deps.Events)

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, profileRepo, deps.TokenManager),
		ProfileService:   NewProfileService(userRepo, profileRepo, portfolioService, tierService),
		PortfolioService: portfolioService,
		TierService:      tierService,
		ReviewService:    reviewService,
		ApprovalService:  NewApprovalService(userRepo, profileRepo, reviewRepo, notificationService, deps.Events),
		CreatorService:   NewCreatorService(userRepo, profileRepo, reviewRepo, portfolioService, tierService),
		AdminService: NewAdminService(
			userRepo, profileRepo, portfolioRepo, tierRepo, reviewRepo,
			portfolioService, tierService, reviewService, deps.Events,
		),
		NotificationService: notificationService,
		UploadService:       NewUploadService(deps.Storage, deps.Upload),
	}
}
