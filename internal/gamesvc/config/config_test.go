package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CLIENT_ORIGIN", "PORT", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_CONNS", "HANDLER_TIMEOUT", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.ClientOrigins)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 30*time.Second, cfg.HandlerTimeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/cardgame?sslmode=disable", cfg.DSN())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CLIENT_ORIGIN", "https://cards.example.com, http://localhost:3000")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "game")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "tables")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("HANDLER_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cards.example.com", "http://localhost:3000"}, cfg.ClientOrigins)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.HandlerTimeout)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, "postgres://game:p%40ss%20word@db:5432/tables?sslmode=disable", cfg.DSN())
}

func TestDatabaseURLOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@h:1/d")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:1/d", cfg.DSN())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DB_MAX_CONNS":    "lots",
		"HANDLER_TIMEOUT": "soon",
		"RATE_LIMIT":      "-1",
		"PORT":            "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
