package routes

import (
	"net/http"

	"creatorhub_backend/internal/handlers"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "creatorhub_backend/docs"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	fileStorage storage.Storage,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Локальное хранилище раздаем сами, S3/R2 отдают файлы по своим ссылкам
	if local, ok := fileStorage.(*storage.LocalStorage); ok && local.BaseURL() != "" && local.BaseURL()[0] == '/' {
		ginRouter.Static(local.BaseURL(), local.BasePath())
		logger.Info("Serving local media", "url", local.BaseURL(), "path", local.BasePath())
	}

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api)
}
