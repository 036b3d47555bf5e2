package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Upload backends accepted in UPLOAD_BACKEND.
const (
	UploadBackendFilesystem = "filesystem"
	UploadBackendPostgres   = "postgres"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	UploadDir          string
	UploadBackend      string
	DatabaseURL        string
	GeoIPDBPath        string
	DefaultLocale      string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	MaxLogoBytes       int64
	MaxUploadBytes     int64
	LogFieldMaxChars   int
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "3000"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		UploadBackend:      strings.ToLower(getEnv("UPLOAD_BACKEND", UploadBackendFilesystem)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "es"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogFieldMaxChars:   getEnvInt("LOG_FIELD_MAX_CHARS", 120),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	var err error
	if cfg.MaxBodyBytes, err = getEnvBytes("MAX_BODY_BYTES", "50MB"); err != nil {
		return nil, err
	}
	if cfg.MaxLogoBytes, err = getEnvBytes("MAX_LOGO_BYTES", "5MB"); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = getEnvBytes("MAX_UPLOAD_BYTES", "20MB"); err != nil {
		return nil, err
	}

	switch cfg.UploadBackend {
	case UploadBackendFilesystem:
	case UploadBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when UPLOAD_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("UPLOAD_BACKEND %q is not supported", cfg.UploadBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvBytes parses human sizes such as "50MB" or "5MiB".
func getEnvBytes(key, fallback string) (int64, error) {
	raw := getEnv(key, fallback)
	n, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s must be greater than zero", key)
	}
	return int64(n), nil
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
