package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("RECIPEDB_BASE_URL")
	os.Unsetenv("RECIPEDB_ENABLED")
	os.Unsetenv("CACHE_ENABLED")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://cosylab.iiitd.edu.in:6969", cfg.RecipeDB.BaseURL)
	assert.Equal(t, 6, cfg.RecipeDB.PageLimit)
	assert.True(t, cfg.RecipeDB.Enabled)
	assert.Equal(t, "http://cosylab.iiitd.edu.in:6969/flavordb", cfg.FlavorDB.BaseURL)
	assert.False(t, cfg.Nutrition.RemoteEnabled)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 1000, cfg.Cache.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, time.Second, cfg.DedupWindow)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	os.Setenv("RECIPEDB_BASE_URL", "http://localhost:9999")
	os.Setenv("NUTRITION_REMOTE_ENABLED", "true")
	defer os.Unsetenv("RECIPEDB_BASE_URL")
	defer os.Unsetenv("NUTRITION_REMOTE_ENABLED")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.RecipeDB.BaseURL)
	assert.True(t, cfg.Nutrition.RemoteEnabled)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		RecipeDB: RecipeDBConfig{Enabled: true, BaseURL: "http://x", PageLimit: 6},
		Cache:    CacheConfig{Enabled: false},
	}
	assert.NoError(t, validateConfig(cfg))

	cfg.Server.Port = 0
	assert.Error(t, validateConfig(cfg))

	cfg.Server.Port = 8080
	cfg.RecipeDB.PageLimit = 0
	assert.Error(t, validateConfig(cfg))
}
