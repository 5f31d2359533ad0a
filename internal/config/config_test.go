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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: "http://localhost:8000/api/products"
cash:
  base_url: "http://localhost:8000/api"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 180*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, ":9190", cfg.Metrics.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: "http://catalog:8000"
cash:
  base_url: "http://cash:8000"
search:
  debounce_ms: 150
http:
  timeout_seconds: 3
log:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://catalog:8000", cfg.Catalog.BaseURL)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRequiresServiceURLs(t *testing.T) {
	path := writeConfig(t, `
cash:
  base_url: "http://cash:8000"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "catalog.base_url")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
