package middleware

import (
	"errors"
	"strings"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/pkg/apperrors"
	"creatorhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware - middleware проверки JWT (только access-токены)
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication credentials were not provided."))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenStr, auth.TokenTypeAccess)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.RoleKey, claims.Role)
		c.Set(contextkeys.EmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// AdminOnly - guard для всей группы /admin.
// Роль берется из БД, а не из claims токена: разжалованный админ теряет доступ сразу.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		role, err := currentRole(c)
		if err != nil {
			logger.CtxWithError(ctx, "Failed to load user role", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		if !auth.IsAdmin(role) {
			logger.CtxWarn(ctx, "Access denied", "path", c.Request.URL.Path, "token_role", GetRole(c), "role", role)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Set(contextkeys.RoleKey, role)
		c.Next()
	}
}

// currentRole - роль активного пользователя из БД; "" если пользователь удален или отключен
func currentRole(c *gin.Context) (string, error) {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return "", errors.New("db key not found in context")
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		return "", errors.New("db in context has incorrect type")
	}

	var user models.User
	err := db.WithContext(c.Request.Context()).
		Select("role", "is_active").
		Where("id = ?", GetUserID(c)).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", nil
	}
	return string(user.Role), nil
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetRole(c *gin.Context) string {
	return c.GetString(contextkeys.RoleKey)
}
