package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("RequiresPostgresPassword", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "")
		t.Setenv("SESSION_SECRET", "secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("RequiresSessionSecret", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "pw")
		t.Setenv("SESSION_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "pw")
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("APP_ENV", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL)
		assert.Equal(t, "production", cfg.Env)
		assert.False(t, cfg.IsDevelopment())
		assert.False(t, cfg.Session.SecureCookies)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("POSTGRES_PASSWORD", "pw")
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("SESSION_TTL", "24h")
		t.Setenv("SECURE_COOKIES", "true")
		t.Setenv("APP_ENV", "development")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
		assert.True(t, cfg.Session.SecureCookies)
		assert.True(t, cfg.IsDevelopment())
	})
}
