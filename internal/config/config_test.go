package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
date: "2024-03-31"
top_k: 3
elexon_base_url: "http://localhost:9999"
output_dir: "out"
complete_day: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", cfg.Date)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "http://localhost:9999", cfg.ElexonBaseURL)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.CompleteDay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	assert.Equal(t, yesterday, cfg.Date)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.CompleteDay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ELEXON_BASE_URL", "http://stub:1234")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `date: "2024-02-01"`))
	require.NoError(t, err)
	assert.Equal(t, "http://stub:1234", cfg.ElexonBaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidDate(t *testing.T) {
	_, err := Load(writeConfig(t, `date: "31-03-2024"`))
	assert.Error(t, err)
}

func TestLoad_InvalidTopK(t *testing.T) {
	_, err := Load(writeConfig(t, `top_k: -1`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.TopK)
}
