package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "postgres://localhost:5432/skillswap?sslmode=disable", cfg.PostgresURI)
	assert.Equal(t, "mongodb://localhost:27017/skillswap", cfg.MongoURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.ModeratorIDs)
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.skillswap.dev")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.skillswap.dev", cfg.AllowedHost)
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://app.skillswap.dev, http://localhost:3000 ,")

	cfg := Load()
	assert.Equal(t, []string{"https://app.skillswap.dev", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadModeratorIDs(t *testing.T) {
	t.Setenv("MODERATOR_IDS", "id-one,id-two")

	cfg := Load()
	require.Len(t, cfg.ModeratorIDs, 2)
	assert.Equal(t, []string{"id-one", "id-two"}, cfg.ModeratorIDs)
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "api.skillswap.dev", stripScheme("https://api.skillswap.dev"))
	assert.Equal(t, "api.skillswap.dev", stripScheme("http://api.skillswap.dev:8080/path"))
	assert.Equal(t, "localhost", stripScheme("localhost:8080"))
}
