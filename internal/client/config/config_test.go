package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"arena"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "https://virtual-arena-backend.onrender.com", cfg.BaseURL)
	assert.Equal(t, "arena.db", cfg.SessionDBPath)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 9, cfg.PageLimit)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	setArgs(t)
	t.Setenv("ARENA_BASE_URL", "https://staging.example.org")
	t.Setenv("ARENA_HTTP_TIMEOUT", "30s")
	t.Setenv("ARENA_PAGE_LIMIT", "5")
	t.Setenv("ARENA_DEBUG", "1")

	cfg := LoadConfig()

	assert.Equal(t, "https://staging.example.org", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.PageLimit)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "arena.db", cfg.SessionDBPath, "untouched fields keep their defaults")
}

func TestLoadConfig_MalformedEnvValuesIgnored(t *testing.T) {
	setArgs(t)
	t.Setenv("ARENA_HTTP_TIMEOUT", "soon")
	t.Setenv("ARENA_PAGE_LIMIT", "many")

	cfg := LoadConfig()

	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 9, cfg.PageLimit)
}

func TestLoadConfig_JsonFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "https://json.example.org",
		"http_timeout": "45s",
		"page_limit": 12
	}`), 0o600))

	setArgs(t, "-config", path)
	t.Setenv("ARENA_BASE_URL", "https://env.example.org")

	cfg := LoadConfig()

	assert.Equal(t, "https://json.example.org", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 12, cfg.PageLimit)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "https://json.example.org"}`), 0o600))

	setArgs(t,
		"-config", path,
		"-a", "https://flag.example.org",
		"-d", "other.db",
		"-t", "10",
		"-l", "3",
		"-v",
	)
	t.Setenv("ARENA_BASE_URL", "https://env.example.org")

	cfg := LoadConfig()

	assert.Equal(t, "https://flag.example.org", cfg.BaseURL)
	assert.Equal(t, "other.db", cfg.SessionDBPath)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.PageLimit)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_JsonTimeoutAsNanoseconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"http_timeout": 5000000000}`), 0o600))

	setArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}
