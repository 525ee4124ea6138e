package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	v := NewViper()
	v.Set("JWT_SECRET", "")

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	v := NewViper()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "futbolokulu", cfg.DB.Name)
	assert.Equal(t, 7, cfg.BlacklistTTLDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	v := NewViper()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("APP_ENV", "production")
	v.Set("JWT_TTL", "2h")
	v.Set("DB_STATEMENT_TIMEOUT_MS", 1500)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 1500, cfg.DB.StatementTimeoutMS)
}

func TestGetEnv_Default(t *testing.T) {
	t.Setenv("FUTBOL_TEST_PRESENT", "x")

	assert.Equal(t, "x", GetEnv("FUTBOL_TEST_PRESENT", "y"))
	assert.Equal(t, "y", GetEnv("FUTBOL_TEST_MISSING_KEY", "y"))
	assert.Equal(t, "", GetEnv("FUTBOL_TEST_MISSING_KEY"))
}
