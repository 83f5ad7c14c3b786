package handlers

import (
	"creatorhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// saveUploads сохраняет profileImage и portfolioImages из multipart-формы и
// подставляет ссылки в запрос. Возвращает сохраненные файлы для отката.
func saveUploads(
	c *gin.Context,
	h *BaseHandler,
	uploader services.UploadService,
	ownerID string,
	profileImage *string,
	portfolio *[]string,
) ([]services.StoredFile, bool) {
	ctx := c.Request.Context()
	var saved []services.StoredFile

	if files := h.FormFiles(c, "profileImage"); len(files) > 0 {
		stored, err := uploader.SaveProfileImage(ctx, ownerID, files[0])
		if err != nil {
			h.HandleServiceError(c, err)
			return nil, false
		}
		saved = append(saved, *stored)
		*profileImage = stored.URL
	}

	if files := h.FormFiles(c, "portfolioImages"); len(files) > 0 {
		stored, err := uploader.SavePortfolioImages(ctx, ownerID, files)
		if err != nil {
			uploader.Discard(ctx, saved...)
			h.HandleServiceError(c, err)
			return nil, false
		}
		saved = append(saved, stored...)
		*portfolio = services.URLs(stored)
	}

	return saved, true
}
