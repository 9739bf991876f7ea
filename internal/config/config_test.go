package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 4, cfg.Upload.MaxImagesPerItem)
	assert.Equal(t, "refresh_token", cfg.Security.RefreshCookie.Name)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, 24*time.Hour, cfg.JWT.VerifyTTL())
	assert.Equal(t, 15*time.Minute, cfg.JWT.ResetTTL())
}

func TestDecodeYAMLOverridesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	raw := `
server:
  port: "9090"
catalog:
  default_page_size: 25
jwt:
  access_expire_minutes: 5
`
	require.NoError(t, v.ReadConfig(strings.NewReader(raw)))

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL())
}

func TestDecodeEnvOverride(t *testing.T) {
	t.Setenv("APP_FRONTEND_URL", "https://market.example")
	cfg, err := Decode(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://market.example", cfg.App.FrontendURL)
}

func TestIsWeakJWTSecret(t *testing.T) {
	assert.True(t, IsWeakJWTSecret(""))
	assert.True(t, IsWeakJWTSecret(DefaultJWTSecret))
	assert.True(t, IsWeakJWTSecret("short-secret"))
	assert.False(t, IsWeakJWTSecret(strings.Repeat("k", 40)))
}
