package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const configFile = ".dlg/config.json"

// Defaults applied to fields left empty in the config file.
const (
	DefaultDBPath   = ".dlg/forms.db"
	DefaultLogPath  = ".dlg/dlg.log"
	DefaultLogLevel = "info"
)

// Theme overrides the table palette with lipgloss colour strings.
type Theme struct {
	Primary    string `json:"primary,omitempty"`
	Muted      string `json:"muted,omitempty"`
	Background string `json:"background,omitempty"`
}

// Config is the persisted CLI configuration.
type Config struct {
	DBPath        string  `json:"db_path,omitempty"`
	LogPath       string  `json:"log_path,omitempty"`
	LogLevel      string  `json:"log_level,omitempty"`
	Mouse         bool    `json:"mouse"`
	DefaultHeight float64 `json:"default_height,omitempty"`
	Theme         Theme   `json:"theme,omitempty"`
	LastForm      string  `json:"last_form,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Load reads the config from disk. A missing file yields the defaults.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{Mouse: true}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetLastForm records the form file most recently edited.
func SetLastForm(baseDir, path string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.LastForm = path
	return Save(baseDir, cfg)
}

// GetLastForm returns the form file most recently edited.
func GetLastForm(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.LastForm, nil
}
