package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Reminders.Enabled)
	assert.Equal(t, 300, cfg.Redis.CacheTTLSeconds)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("SEARCH_RATE_PER_SEC", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 0.5, cfg.Server.SearchRatePerSec)
}

func TestLoad_BadNumberFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate_RemindersNeedSender(t *testing.T) {
	t.Setenv("REMINDERS_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_SENDER")

	t.Setenv("MAIL_SENDER", "noreply@example.com")
	_, err = Load()
	assert.NoError(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", Name: "uptask", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=uptask sslmode=disable", d.DSN())
}
