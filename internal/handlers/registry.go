package handlers

import (
	"github.com/gin-gonic/gin"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	CreatorHandler *CreatorHandler
	ReviewHandler  *ReviewHandler
	AdminHandler   *AdminHandler
}

// RegisterRoutes регистрирует маршруты всех хэндлеров в группе API
func (h *AppHandlers) RegisterRoutes(rg *gin.RouterGroup) {
	h.AuthHandler.RegisterRoutes(rg)
	h.UserHandler.RegisterRoutes(rg)
	h.CreatorHandler.RegisterRoutes(rg)
	h.ReviewHandler.RegisterRoutes(rg)
	h.AdminHandler.RegisterRoutes(rg)
}
