// Package config holds the AgriAssist user configuration, loaded from
// ~/.agriassist/config.json with environment-variable overrides. The file is
// optional; every field has a working default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when neither file nor environment specifies a value.
const (
	DefaultEndpoint = "http://127.0.0.1:8000"
	configDirName   = ".agriassist"
	configFileName  = "config.json"
)

// UserConfig is the single source of truth for configuration.
type UserConfig struct {
	// Analysis service base URL (POST /submit-survey).
	Endpoint string `json:"endpoint,omitempty"`

	// Positioning endpoint for location auto-fill. Empty means the
	// environment has no location capability and the GPS control reports
	// that immediately.
	GeoEndpoint string `json:"geo_endpoint,omitempty"`

	// Directory exported strategy documents are written to.
	ExportDir string `json:"export_dir,omitempty"`

	// Path to an external catalog YAML overriding the embedded payload.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`

	// Debug enables category log files under the config directory.
	Debug bool `json:"debug,omitempty"`
}

// Dir returns the configuration directory, creating nothing.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// Load reads the config file at path (or the default location when path is
// empty), then applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (*UserConfig, error) {
	if path == "" {
		path = filepath.Join(Dir(), configFileName)
	}

	cfg := &UserConfig{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers AGRIASSIST_* environment variables over the file values.
func (c *UserConfig) applyEnv() {
	if v := os.Getenv("AGRIASSIST_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("AGRIASSIST_GEO_ENDPOINT"); v != "" {
		c.GeoEndpoint = v
	}
	if v := os.Getenv("AGRIASSIST_EXPORT_DIR"); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv("AGRIASSIST_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("AGRIASSIST_DARK_MODE"); v == "1" {
		c.Theme = "dark"
	}
	if v := os.Getenv("AGRIASSIST_DEBUG"); v == "1" {
		c.Debug = true
	}
}

// GetEndpoint returns the analysis endpoint with the default applied.
func (c *UserConfig) GetEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpoint
}

// GetExportDir returns the export directory, defaulting to the working
// directory.
func (c *UserConfig) GetExportDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	return "."
}

// Save writes the config back to the default location.
func (c *UserConfig) Save() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0o644)
}
