package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: production
database:
  driver: mysql
  url: "user:pass@tcp(localhost:3306)/creatorhub"
jwt:
  secret: from-yaml
storage:
  type: s3
  bucket: media
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ORIGINS", "https://a.test,https://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "media", cfg.Storage.Bucket)
	assert.Empty(t, cfg.Storage.BasePath, "для s3 локальный путь не подставляется")
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/creatorhub")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 60, cfg.JWT.AccessTTL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "/media", cfg.Storage.BaseURL)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, "creatorhub.events", cfg.Events.Exchange)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load(writeConfig(t, "database:\n  url: \"\"\n"))
	assert.ErrorContains(t, err, "database url is required")

	t.Setenv("DATABASE_URL", "file.db")
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err = Load("")
	assert.ErrorContains(t, err, "unsupported database driver")
}
