package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

// loginAs создает пользователя с ролью и возвращает его токен
func loginAs(t *testing.T, ts *helpers.TestServer, username string, role models.UserRole) (string, *models.User) {
	t.Helper()
	user := helpers.CreateUser(t, ts.DB, username, role)
	return ts.Login(t, user.Email), user
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), "Не удалось распарсить JSON: %s", body)
	return v
}

func TestHealth(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, body)
}
