package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "storage/terrains", cfg.UploadDir)
	assert.Equal(t, "terrain_rental", cfg.DB.Name)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, DefaultSeed(), cfg.Seed)
	assert.Error(t, cfg.RequireJWT())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SEED_TERRAINS", "7")
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "mysql", cfg.DB.Host)
	assert.NoError(t, cfg.RequireJWT())
	assert.Equal(t, 7, cfg.Seed.Terrains)
	assert.Equal(t, 1, cfg.RateLimit.Capacity)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.TTL)
}

func TestLoadRejectsInvertedSeedRange(t *testing.T) {
	t.Setenv("SEED_IMAGES_MIN", "6")

	_, err := Load()
	assert.ErrorContains(t, err, "SEED_IMAGES_MAX")
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("SEED_USERS", "ten")

	_, err := Load()
	assert.Error(t, err)
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.address())
	assert.Equal(t, "10.0.0.1:6379", RedisConfig{Addr: "10.0.0.1:6379", Host: "cache"}.address())
}
