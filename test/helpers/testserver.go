package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"creatorhub_backend/internal/app"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var initLogger sync.Once

type TestServer struct {
	Server  *httptest.Server
	DB      *gorm.DB
	Config  *config.Config
	Events  *events.MemoryPublisher
	Email   *email.MockProvider
	Storage *storage.LocalStorage
}

// TestConfig - конфиг без внешних систем: sqlite, локальное хранилище, без SMTP и AMQP
func TestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.LogLevel = "error"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "test_secret_key_for_integration_tests"
	cfg.JWT.AccessTTL = 60
	cfg.JWT.RefreshTTL = 24 * 60
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/media"
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	return cfg
}

// NewTestServer поднимает полный роутер приложения поверх NewTestDB
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	cfg := TestConfig(t)
	initLogger.Do(func() {
		gin.SetMode(gin.TestMode)
		logger.InitWithLevel(cfg.Server.Env, cfg.Server.LogLevel)
	})

	db := NewTestDB(t)

	local, err := storage.NewLocalStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	deps := &app.Dependencies{
		Storage: local,
		Email:   email.NewMockProvider(),
		Events:  events.NewMemoryPublisher(),
	}

	router := app.SetupRouter(cfg, db, deps)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		DB:      db,
		Config:  cfg,
		Events:  deps.Events.(*events.MemoryPublisher),
		Email:   deps.Email.(*email.MockProvider),
		Storage: local,
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с прочитанным телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// FormFile - файл для multipart-запроса
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// SendMultipart отправляет multipart/form-data с полями и файлами
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, files []FormFile) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")
	return res, string(resBody)
}

// Login получает access-токен через /token/
func (ts *TestServer) Login(t *testing.T, emailAddr string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]string{
		"email":    emailAddr,
		"password": DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+body)

	var tokens struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tokens))
	require.NotEmpty(t, tokens.Access)
	return tokens.Access
}

// PNG - минимальный валидный PNG 1x1 для загрузок
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
