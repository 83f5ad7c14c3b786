package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/database"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/handlers"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/routes"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/internal/validator"
	"creatorhub_backend/internal/workers"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies - внешние системы приложения
type Dependencies struct {
	Storage storage.Storage
	Email   email.Provider
	Events  events.Publisher
}

func (d *Dependencies) Close() {
	if d.Events != nil {
		if err := d.Events.Close(); err != nil {
			logger.Warn("Failed to close event publisher", "error", err)
		}
	}
	if d.Email != nil {
		_ = d.Email.Close()
	}
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.InitWithLevel(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		Env:          cfg.Server.Env,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if !cfg.Database.SkipMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database migrated")
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Если не удалось создать админа - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	deps, err := BuildDependencies(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer deps.Close()

	ginRouter := SetupRouter(cfg, gormDB, deps)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Workers.RatingAuditInterval > 0 {
		workers.NewRatingAuditWorker(
			gormDB,
			repositories.NewProfileRepository(),
			repositories.NewReviewRepository(),
			time.Duration(cfg.Workers.RatingAuditInterval)*time.Minute,
		).Start(ctx)
		logger.Info("Rating audit worker started", "interval_min", cfg.Workers.RatingAuditInterval)
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// BuildDependencies создает хранилище, почтовый провайдер и публикатор событий по конфигу.
// Без SMTP письма уходят в mock-провайдер, без AMQP события отбрасываются.
func BuildDependencies(cfg *config.Config) (*Dependencies, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not set. Using mock email provider.")
		emailProvider = email.NewMockProvider()
	} else {
		smtp := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    cfg.Email.UseTLS,
		}.WithDefaults(), email.NewTemplateManager())
		if err := smtp.Validate(); err != nil {
			return nil, fmt.Errorf("email: %w", err)
		}
		emailProvider = smtp
	}

	var publisher events.Publisher
	if cfg.Events.AMQPURL == "" {
		logger.Warn("AMQP url is not set. Domain events will not be published.")
		publisher = events.NewNoopPublisher()
	} else {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return nil, fmt.Errorf("events: %w", err)
		}
		publisher = amqpPublisher
	}

	return &Dependencies{
		Storage: storageInstance,
		Email:   emailProvider,
		Events:  publisher,
	}, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps *Dependencies) *gin.Engine {
	tokens := auth.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTL)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTL)*time.Minute,
	)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, tokens, deps)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, tokens)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Регистрация маршрутов
	routes.RegisterRoutes(ginRouter, appHandlers, deps.Storage)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, deps *Dependencies) *services.ServiceContainer {
	return services.NewServiceContainer(services.Dependencies{
		TokenManager: tokens,
		Storage:      deps.Storage,
		Email:        deps.Email,
		Events:       deps.Events,
		Upload: services.UploadConfig{
			MaxFileSize:  cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		},
	})
}

func initializeHandlers(services *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, tokens)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, services.AuthService),
		CreatorHandler: handlers.NewCreatorHandler(baseHandler, services.ProfileService, services.CreatorService, services.UploadService),
		ReviewHandler:  handlers.NewReviewHandler(baseHandler, services.ReviewService),
		AdminHandler:   handlers.NewAdminHandler(baseHandler, services.ApprovalService, services.AdminService, services.UploadService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("LOWER(email) = LOWER(?)", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		Username:     "admin",
		Name:         "Administrator",
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
