package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, yml string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0644))
	chdir(t, dir)
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	writeConfig(t, `
agency:
  tag: ttc
  latMin: 43.0
  latMax: 44.0
`)
	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "ttc", cfg.Agency.Tag)
	assert.Equal(t, DefaultBaseURL, cfg.Feed.BaseURL)
	assert.Equal(t, 10000, cfg.Feed.TimeoutMS)
	assert.Equal(t, DefaultActiveExpirySec, cfg.Active.ExpirySec)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadAppConfig()
	assert.Error(t, err)
}

func TestLoadAppConfig_InvalidBounds(t *testing.T) {
	writeConfig(t, `
agency:
  tag: ttc
  latMin: 44.0
  latMax: 43.0
`)
	_, err := LoadAppConfig()
	assert.Error(t, err, "latMax must be greater than latMin")
}

func TestLoadAppConfig_EnvOverrides(t *testing.T) {
	writeConfig(t, `
agency:
  tag: ttc
  latMin: 43.0
  latMax: 44.0
feed:
  baseURL: https://example.com/feed
`)
	t.Setenv("NEXTBUS_AGENCY", "sf-muni")
	t.Setenv("NEXTBUS_ACTIVE_EXPIRY_SEC", "120")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "sf-muni", cfg.Agency.Tag)
	assert.Equal(t, "https://example.com/feed", cfg.Feed.BaseURL)
	assert.Equal(t, 120, cfg.Active.ExpirySec)
}

func TestValidate_ProgrammaticConfig(t *testing.T) {
	cfg := &AppConfig{Agency: AgencyConfig{Tag: "ttc", LatMin: 43.0, LatMax: 44.0}}
	require.NoError(t, Validate(cfg))
	assert.Equal(t, DefaultBaseURL, cfg.Feed.BaseURL)

	bad := &AppConfig{}
	assert.Error(t, Validate(bad))
}
