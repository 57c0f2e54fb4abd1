package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Slack     SlackConfig
	Reminders RemindersConfig
	Sheets    SheetsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the single dashboard account and token settings.
type AuthConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	TokenExpiry  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SlackConfig points at the outbound webhook for schedule digests.
type SlackConfig struct {
	WebhookURL string
	Channel    string
	Username   string
}

// RemindersConfig tunes the due-reminder poll loop.
type RemindersConfig struct {
	Enabled      bool
	PollInterval time.Duration
}

// SheetsConfig controls spreadsheet export storage and download links.
type SheetsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	MaxUploadBytes  int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Username:     v.GetString("DASHBOARD_USER"),
		PasswordHash: v.GetString("DASHBOARD_PASSWORD_HASH"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		TokenExpiry:  parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Slack = SlackConfig{
		WebhookURL: v.GetString("SLACK_WEBHOOK_URL"),
		Channel:    v.GetString("SLACK_CHANNEL"),
		Username:   v.GetString("SLACK_USERNAME"),
	}

	cfg.Reminders = RemindersConfig{
		Enabled:      v.GetBool("ENABLE_REMINDER_POLL"),
		PollInterval: parseDuration(v.GetString("REMINDER_POLL_INTERVAL"), 10*time.Second),
	}

	maxUpload := v.GetInt64("SHEETS_MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}
	cfg.Sheets = SheetsConfig{
		StorageDir:      v.GetString("SHEETS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("SHEETS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("SHEETS_SIGNED_URL_TTL"), 30*time.Minute),
		MaxUploadBytes:  maxUpload,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "daybook")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DASHBOARD_USER", "prakasam")
	v.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SLACK_WEBHOOK_URL", "")
	v.SetDefault("SLACK_CHANNEL", "#daily")
	v.SetDefault("SLACK_USERNAME", "Daily Bot")

	v.SetDefault("ENABLE_REMINDER_POLL", true)
	v.SetDefault("REMINDER_POLL_INTERVAL", "10s")

	v.SetDefault("SHEETS_STORAGE_DIR", "./exports")
	v.SetDefault("SHEETS_SIGNED_URL_SECRET", "dev_sheets_secret")
	v.SetDefault("SHEETS_SIGNED_URL_TTL", "30m")
	v.SetDefault("SHEETS_MAX_UPLOAD_BYTES", 10*1024*1024)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
