package handlers

import (
	"net/http"

	"creatorhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/", h.RequireAuth(), h.CurrentUser)
}

// CurrentUser godoc
// @Summary Текущий пользователь
// @Description profile = null для не-креаторов
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CurrentUserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /user/ [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.authService.CurrentUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
