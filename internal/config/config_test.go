package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with the config variables unset.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"METASNAP_LOG_LEVEL", "METASNAP_HTTP_TIMEOUT", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	require.Equal(t, "8080", cfg.Port)
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("METASNAP_LOG_LEVEL", "debug")
	t.Setenv("METASNAP_HTTP_TIMEOUT", "15s")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "9090", cfg.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("METASNAP_HTTP_TIMEOUT=3s\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	isolate(t)
	t.Setenv("METASNAP_HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{LogLevel: "info", Port: "8080"}
	require.NoError(t, cfg.Validate())

	cfg.HTTPTimeout = -time.Second
	require.Error(t, cfg.Validate())

	cfg.HTTPTimeout = 0
	cfg.Port = ""
	require.Error(t, cfg.Validate())
}
