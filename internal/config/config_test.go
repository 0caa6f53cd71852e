package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"urlcheck/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: development\n"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, time.Hour, cfg.Checker.FreshThreshold)
	require.Equal(t, 24*time.Hour, cfg.Checker.TTLThreshold)
	require.Equal(t, 10*time.Second, cfg.SafeBrowsing.Timeout)
	require.Equal(t, 10*time.Second, cfg.CertCheck.Timeout)
	require.Equal(t, 30*time.Second, cfg.Opinion.Timeout)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
environment: production
checker:
  freshThreshold: 30m
  ttlThreshold: 12h
safeBrowsing:
  apiKey: sb-key
opinion:
  apiKey: groq-key
  model: test-model
`))
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 30*time.Minute, cfg.Checker.FreshThreshold)
	require.Equal(t, 12*time.Hour, cfg.Checker.TTLThreshold)
	require.Equal(t, "sb-key", cfg.SafeBrowsing.APIKey)
	require.Equal(t, "groq-key", cfg.Opinion.APIKey)
	require.Equal(t, "test-model", cfg.Opinion.Model)
}

func TestLoad_FreshExceedsTTL(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
checker:
  freshThreshold: 48h
  ttlThreshold: 24h
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not exceed ttl threshold")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
