package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.GetEndpoint())
	assert.Equal(t, ".", cfg.GetExportDir())
	assert.Empty(t, cfg.GeoEndpoint)
	assert.False(t, cfg.Debug)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint": "http://advisor.example:9000",
		"geo_endpoint": "http://localhost:7000/fix",
		"theme": "dark",
		"debug": true
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://advisor.example:9000", cfg.GetEndpoint())
	assert.Equal(t, "http://localhost:7000/fix", cfg.GeoEndpoint)
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.Debug)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint": "http://file.example"}`), 0o644))

	t.Setenv("AGRIASSIST_ENDPOINT", "http://env.example")
	t.Setenv("AGRIASSIST_DARK_MODE", "1")
	t.Setenv("AGRIASSIST_DEBUG", "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.GetEndpoint())
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.Debug)
}
