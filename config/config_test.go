package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(APIBaseURLEnv, "")
	path := writeConfig(t, `
api:
  base_url: "https://api.example.com/api/"
  timeout_seconds: 5
session:
  ttl_minutes: 30
kafka:
  brokers: ["kafka:9092"]
  storefront_topic: "storefront.events"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL())
	assert.True(t, cfg.Kafka.Enabled())
	// untouched sections keep their defaults
	assert.Equal(t, "storefront_session", cfg.Session.CookieName)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
}

func TestLoadConfig_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv(APIBaseURLEnv, "http://staging:5000/api")
	path := writeConfig(t, `
api:
  base_url: "https://api.example.com/api"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://staging:5000/api", cfg.API.BaseURL)
}

func TestDefault_FallsBackToLocalAPI(t *testing.T) {
	t.Setenv(APIBaseURLEnv, "")

	cfg := Default()
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "api: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "accounts", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=accounts sslmode=disable", d.DSN())
}
