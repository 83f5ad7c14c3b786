package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/database"
	"creatorhub_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "middleware.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := database.Connect(database.Options{Driver: "sqlite", DSN: dsn, Env: "test", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@test.com",
		Username:     username,
		Name:         username,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestRouter(t *testing.T, tokens *auth.TokenManager) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	r := gin.New()
	r.Use(RequestIDMiddleware(), CORSMiddleware([]string{"https://app.test"}), DBMiddleware(db))

	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/admin", AuthMiddleware(tokens), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, db
}

func serve(r http.Handler, method, path, token string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-secret", time.Hour, 24*time.Hour)
	r, _ := newTestRouter(t, tokens)

	w := serve(r, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	refresh, err := tokens.GenerateRefreshToken("u1", "u1@test.com", "creator")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/me", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	access, err := tokens.GenerateAccessToken("u1", "u1@test.com", "creator")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"creator"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAdminOnly(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-secret", time.Hour, 24*time.Hour)
	r, db := newTestRouter(t, tokens)

	creator := createUser(t, db, "creator1", models.UserRoleCreator)
	admin := createUser(t, db, "admin1", models.UserRoleAdmin)

	creatorToken, err := tokens.GenerateAccessToken(creator.ID, creator.Email, string(creator.Role))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", creatorToken, nil).Code)

	adminToken, err := tokens.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", adminToken, nil).Code)

	// claim "admin" в токене без админа в БД ничего не дает
	forged, err := tokens.GenerateAccessToken(creator.ID, creator.Email, "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", forged, nil).Code)
}

func TestAdminOnly_DemotedAdminLosesAccessWithLiveToken(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-secret", time.Hour, 24*time.Hour)
	r, db := newTestRouter(t, tokens)

	admin := createUser(t, db, "admin2", models.UserRoleAdmin)
	token, err := tokens.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", token, nil).Code)

	require.NoError(t, db.Model(admin).Update("role", models.UserRoleSupporter).Error)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", token, nil).Code)

	require.NoError(t, db.Model(admin).Updates(map[string]interface{}{"role": models.UserRoleAdmin, "is_active": false}).Error)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", token, nil).Code)
}

func TestCORSAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t, auth.NewTokenManager("s", time.Hour, time.Hour))

	w := serve(r, http.MethodOptions, "/me", "", map[string]string{"Origin": "https://app.test"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(r, http.MethodOptions, "/me", "", map[string]string{"Origin": "https://evil.test"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/me", "", map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/ping", "", map[string]string{"Origin": "https://any.test"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://any.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
