package handlers

import (
	"net/http"

	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	profileService services.ProfileService
	creatorService services.CreatorService
	uploadService  services.UploadService
}

func NewCreatorHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	creatorService services.CreatorService,
	uploadService services.UploadService,
) *CreatorHandler {
	return &CreatorHandler{
		BaseHandler:    base,
		profileService: profileService,
		creatorService: creatorService,
		uploadService:  uploadService,
	}
}

func (h *CreatorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/creators/", h.ListCreators)

	creator := rg.Group("/creator")
	{
		creator.GET("/:username/", h.GetCreator)
		creator.POST("/setup/", h.RequireAuth(), h.Setup)
		creator.POST("/edit/", h.RequireAuth(), h.Edit)
	}
}

// ListCreators godoc
// @Summary Одобренные креаторы
// @Tags creators
// @Produce json
// @Success 200 {object} dto.CreatorListResponse
// @Router /creators/ [get]
func (h *CreatorHandler) ListCreators(c *gin.Context) {
	response, err := h.creatorService.ListApprovedCreators(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetCreator godoc
// @Summary Публичная страница креатора
// @Description Поиск по username без учета регистра
// @Tags creators
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.CreatorDetail
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /creator/{username}/ [get]
func (h *CreatorHandler) GetCreator(c *gin.Context) {
	response, err := h.creatorService.GetCreatorDetail(h.GetDB(c), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Setup godoc
// @Summary Настройка профиля креатора
// @Description multipart: profile[bio], profile[location], profile[creatorLevel], profile[twitter],
// @Description profile[instagram], profile[age], tiers (JSON), profileImage, portfolioImages.
// @Description Галерея и тарифы заменяются целиком.
// @Tags creators
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /creator/setup/ [post]
func (h *CreatorHandler) Setup(c *gin.Context) {
	var req dto.CreatorSetupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	uploaded, ok := saveUploads(c, h.BaseHandler, h.uploadService, userID, &req.ProfileImage, &req.PortfolioImages)
	if !ok {
		return
	}

	if err := h.profileService.SetupProfile(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.uploadService.Discard(c.Request.Context(), uploaded...)
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Creator profile setup complete."})
}

// Edit godoc
// @Summary Частичное редактирование профиля
// @Description Меняются только переданные поля. Галерея заменяется, только если загружены portfolioImages.
// @Tags creators
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /creator/edit/ [post]
func (h *CreatorHandler) Edit(c *gin.Context) {
	var req dto.CreatorEditRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var profileImage string
	uploaded, ok := saveUploads(c, h.BaseHandler, h.uploadService, userID, &profileImage, &req.PortfolioImages)
	if !ok {
		return
	}
	if profileImage != "" {
		req.ProfileImage = &profileImage
	}

	if err := h.profileService.EditProfile(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.uploadService.Discard(c.Request.Context(), uploaded...)
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Profile updated successfully."})
}
