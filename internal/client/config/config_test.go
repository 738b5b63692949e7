package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"parcelace"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "https://api.parcelace.io/api/v1", cfg.APIBaseURL)
	require.Equal(t, "parcelace.db", cfg.StorePath)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 30*time.Minute, cfg.RenewalWarnAfter)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	setArgs(t, "-a", "http://localhost:8080", "-w", "45", "-s", "test.db")

	cfg := LoadConfig()
	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, "test.db", cfg.StorePath)
	require.Equal(t, 45*time.Minute, cfg.RenewalWarnAfter)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "http://staging.internal",
		"redis_addr": "127.0.0.1:6379",
		"renewal_warn_after": "20m"
	}`), 0o600))

	setArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "http://staging.internal", cfg.APIBaseURL)
	require.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	require.Equal(t, 20*time.Minute, cfg.RenewalWarnAfter)
	// Untouched fields keep their defaults.
	require.Equal(t, "parcelace.db", cfg.StorePath)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "http://from-json"}`), 0o600))

	setArgs(t, "-c", path, "-a", "http://from-flag")

	cfg := LoadConfig()
	require.Equal(t, "http://from-flag", cfg.APIBaseURL)
}
