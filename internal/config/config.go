package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host" env:"SERVER_HOST"`
		Port        int      `yaml:"port" env:"SERVER_PORT"`
		Env         string   `yaml:"env" env:"SERVER_ENV"`
		LogLevel    string   `yaml:"log_level" env:"LOG_LEVEL"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver" env:"DATABASE_DRIVER"` // postgres, mysql, sqlite
		DSN          string `yaml:"url" env:"DATABASE_URL"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
		SkipMigrate  bool   `yaml:"skip_migrate" env:"DATABASE_SKIP_MIGRATE"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		AccessTTL  int    `yaml:"access_ttl" env:"JWT_ACCESS_TTL"`   // minutes
		RefreshTTL int    `yaml:"refresh_ttl" env:"JWT_REFRESH_TTL"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER"`
		SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		FromEmail    string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		FromName     string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		UseTLS       bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type" env:"STORAGE_TYPE"`           // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path" env:"STORAGE_BASE_PATH"` // local storage
		BaseURL    string `yaml:"base_url" env:"STORAGE_BASE_URL"`   // public URL base
		Bucket     string `yaml:"bucket" env:"STORAGE_BUCKET"`
		Region     string `yaml:"region" env:"STORAGE_REGION"`
		AccessKey  string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
		SecretKey  string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
		Endpoint   string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
		UseSSL     bool   `yaml:"use_ssl" env:"STORAGE_USE_SSL"`
		PublicRead bool   `yaml:"public_read" env:"STORAGE_PUBLIC_READ"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size" env:"UPLOAD_MAX_SIZE"` // bytes per file
		AllowedTypes []string `yaml:"allowed_types" env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
	} `yaml:"upload"`

	Events struct {
		AMQPURL  string `yaml:"amqp_url" env:"AMQP_URL"`
		Exchange string `yaml:"exchange" env:"AMQP_EXCHANGE"`
	} `yaml:"events"`

	Workers struct {
		RatingAuditInterval int `yaml:"rating_audit_interval" env:"RATING_AUDIT_INTERVAL"` // minutes, 0 - выключено
	} `yaml:"workers"`

	FirstAdmin struct {
		Email    string `yaml:"email" env:"FIRST_ADMIN_EMAIL"`
		Password string `yaml:"password" env:"FIRST_ADMIN_PASSWORD"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// LoadConfig загружает глобальную конфигурацию. Ошибка конфигурации фатальна.
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	AppConfig = cfg
}

// Load читает .env (если есть), затем YAML-файл (если есть),
// затем переменные окружения поверх, и заполняет значения по умолчанию.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("config file %s not found, using environment only", path)
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.JWT.AccessTTL == 0 {
		c.JWT.AccessTTL = 60
	}
	if c.JWT.RefreshTTL == 0 {
		c.JWT.RefreshTTL = 24 * 60
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.Type == "local" {
		if c.Storage.BasePath == "" {
			c.Storage.BasePath = "./uploads"
		}
		if c.Storage.BaseURL == "" {
			c.Storage.BaseURL = "/media"
		}
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = 10 * 1024 * 1024
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = "creatorhub.events"
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	return nil
}

// IsDevelopment - удобный хелпер для выбора формата логов и отладочных ответов
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
