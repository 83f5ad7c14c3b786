package handlers

import (
	"net/http"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	approvalService services.ApprovalService
	adminService    services.AdminService
	uploadService   services.UploadService
}

func NewAdminHandler(
	base *BaseHandler,
	approvalService services.ApprovalService,
	adminService services.AdminService,
	uploadService services.UploadService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     base,
		approvalService: approvalService,
		adminService:    adminService,
		uploadService:   uploadService,
	}
}

// RegisterRoutes - вся группа /admin закрыта одним guard'ом
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.RequireAuth(), middleware.AdminOnly())
	{
		admin.GET("/approvals/", h.ListApprovals)
		admin.POST("/handle_approval/", h.HandleApproval)
		admin.POST("/remove_creator/", h.RemoveCreator)
		admin.POST("/add/", h.AddUser)
		admin.POST("/edit/:username/", h.EditUser)
	}
}

// ListApprovals godoc
// @Summary Creator profiles awaiting and after moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApprovalsResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/approvals/ [get]
func (h *AdminHandler) ListApprovals(c *gin.Context) {
	response, err := h.approvalService.ListByStatus(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// HandleApproval godoc
// @Summary Approve or reject a creator
// @Description status: approved | rejected. Returns the updated lists.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.HandleApprovalRequest true "Decision"
// @Success 200 {object} dto.ApprovalsResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/handle_approval/ [post]
func (h *AdminHandler) HandleApproval(c *gin.Context) {
	var req dto.HandleApprovalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.approvalService.HandleApproval(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// RemoveCreator godoc
// @Summary Remove a creator with all related data
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RemoveCreatorRequest true "Creator user id"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/remove_creator/ [post]
func (h *AdminHandler) RemoveCreator(c *gin.Context) {
	var req dto.RemoveCreatorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.RemoveCreator(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Creator removed successfully."})
}

// AddUser godoc
// @Summary Add a creator with an approved profile
// @Description Email and password are generated when omitted; the password is returned once.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminAddUserRequest true "User"
// @Success 201 {object} dto.AdminAddUserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /admin/add/ [post]
func (h *AdminHandler) AddUser(c *gin.Context) {
	var req dto.AdminAddUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.adminService.AddUser(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// EditUser godoc
// @Summary Edit a creator's account and profile
// @Description Gallery comes from uploaded portfolioImages, otherwise from the gallery JSON list.
// @Tags admin
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} dto.AdminEditUserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/edit/{username}/ [post]
func (h *AdminHandler) EditUser(c *gin.Context) {
	var req dto.AdminEditUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// файлы сохраняются в каталог редактируемого пользователя
	var profileImage string
	uploaded, ok := saveUploads(c, h.BaseHandler, h.uploadService, c.Param("username"), &profileImage, &req.PortfolioImages)
	if !ok {
		return
	}
	if profileImage != "" {
		req.ProfileImage = &profileImage
	}

	response, err := h.adminService.EditUser(c.Request.Context(), h.GetDB(c), c.Param("username"), &req)
	if err != nil {
		h.uploadService.Discard(c.Request.Context(), uploaded...)
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
