package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests the default configuration
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/app.db", cfg.Database.Path)
	assert.Equal(t, "http://router.project-osrm.org", cfg.Routing.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
	assert.False(t, cfg.NewRelic.Enabled)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

// TestLoad_Overrides tests environment variable overrides
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("OSRM_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

// TestValidate tests configuration validation rules
func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", Env: "development", SecretKey: "s3cret"},
			Database:  DatabaseConfig{Driver: "sqlite", Path: "./data/app.db"},
			Routing:   RoutingConfig{BaseURL: "http://osrm"},
			Geocoding: GeocodingConfig{BaseURL: "http://nominatim"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("sqlite without path", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("postgres without host", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "postgres"
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing routing url", func(t *testing.T) {
		cfg := valid()
		cfg.Routing.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret in production", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Env = "production"
		cfg.Server.SecretKey = "change-me-in-production"
		assert.Error(t, cfg.Validate())
	})
}
