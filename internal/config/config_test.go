package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"heatman/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5567", s.Port)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 15*time.Second, s.Heater.Interval)
	assert.True(t, s.Heater.ProbeWhenForced)
	assert.Equal(t, "heater_config.json", s.Heater.ConfigPath)
	assert.Equal(t, config.StorageFile, s.Storage.Driver)
	assert.Equal(t, "http://localhost:8000", s.MetricsSource.URL)
	assert.Equal(t, time.Second, s.Presence.Timeout)
	assert.Equal(t, "http://192.168.178.86/rpc/", s.Plug.URL)
	assert.Equal(t, 0, s.Plug.SwitchID)
	assert.Empty(t, s.Auth.JWTSecret)

	ip, err := s.PresenceIP()
	require.NoError(t, err)
	assert.Equal(t, "192.168.178.89", ip.String())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
port: "9000"
log_level: debug
heater:
  interval: 5s
  probe_when_forced: false
storage:
  driver: sqlite
  db_path: /tmp/heatman.db
presence:
  address: 10.0.0.7
  timeout: 500ms
plug:
  switch_id: 1
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o600))
	t.Setenv("HEATMAN_PORT", "9100")
	t.Setenv("HEATMAN_AUTH_JWT_SECRET", "s3cret")

	s, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9100", s.Port, "env must override the file")
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 5*time.Second, s.Heater.Interval)
	assert.False(t, s.Heater.ProbeWhenForced)
	assert.Equal(t, config.StorageSQLite, s.Storage.Driver)
	assert.Equal(t, "/tmp/heatman.db", s.Storage.DBPath)
	assert.Equal(t, 500*time.Millisecond, s.Presence.Timeout)
	assert.Equal(t, 1, s.Plug.SwitchID)
	assert.Equal(t, "s3cret", s.Auth.JWTSecret)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
heater:
  interval: 0s
storage:
  driver: postgres
presence:
  address: not-an-ip
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heater.interval")
	assert.Contains(t, err.Error(), "storage.driver")
	assert.Contains(t, err.Error(), "presence.address")
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("port: [unterminated"), 0o600))

	_, err := config.Load(dir)
	require.Error(t, err)
}
