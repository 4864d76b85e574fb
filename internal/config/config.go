package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is built once in main
// and passed down; nothing reads the environment after Load returns.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Routing   RoutingConfig
	Geocoding GeocodingConfig
	Notify    NotifyConfig
	NewRelic  NewRelicConfig
	Log       LogConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	Host      string
	SecretKey string
	StaticDir string
}

type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres"
	Driver string

	// Path is the sqlite database file, created on first boot
	Path string

	// Postgres settings, used when Driver is "postgres"
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type RoutingConfig struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

type GeocodingConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type NotifyConfig struct {
	WebhookURL string
	Token      string
	Timeout    time.Duration
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			Env:       getEnv("SERVER_ENV", "development"),
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			SecretKey: getEnv("SECRET_KEY", "change-me-in-production"),
			StaticDir: getEnv("STATIC_DIR", "./web/static"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "./data/app.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "openride"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Routing: RoutingConfig{
			BaseURL: getEnv("OSRM_URL", "http://router.project-osrm.org"),
			Profile: getEnv("OSRM_PROFILE", "driving"),
			Timeout: time.Duration(getEnvAsInt("OSRM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Geocoding: GeocodingConfig{
			BaseURL:   getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("NOMINATIM_USER_AGENT", "openride/1.0"),
			Timeout:   time.Duration(getEnvAsInt("NOMINATIM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			Token:      getEnv("NOTIFY_TOKEN", ""),
			Timeout:    time.Duration(getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "OpenRide-Server"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
				"http://localhost:3000",
			}),
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres driver")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Routing.BaseURL == "" {
		return fmt.Errorf("OSRM_URL is required")
	}
	if c.Geocoding.BaseURL == "" {
		return fmt.Errorf("NOMINATIM_URL is required")
	}
	if c.Server.SecretKey == "change-me-in-production" && c.Server.Env == "production" {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
