package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfeintake/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 500, cfg.Ingest.CandidateLimit)
	assert.True(t, cfg.Ingest.SuggestNames)
	assert.Equal(t, 1.0, cfg.Ingest.BarcodeConfidence)
	assert.Equal(t, 0.8, cfg.Ingest.NameConfidence)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("NFEINTAKE_INGEST_CANDIDATE_LIMIT", "50")
	t.Setenv("NFEINTAKE_INGEST_SUGGEST_NAMES", "false")
	t.Setenv("NFEINTAKE_JWT_AUDIENCE", "receiving-api")
	t.Setenv("NFEINTAKE_CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Ingest.CandidateLimit)
	assert.False(t, cfg.Ingest.SuggestNames)
	assert.Equal(t, "receiving-api", cfg.JWT.Audience)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NFEINTAKE_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_RejectsNonPositiveCandidateLimit(t *testing.T) {
	t.Setenv("NFEINTAKE_INGEST_CANDIDATE_LIMIT", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=require", db.DSN())
}
