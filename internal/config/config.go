// Package config loads givo's YAML configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration.
type Config struct {
	// DataDir holds the todos database, the state snapshot and logs.
	DataDir string `yaml:"data_dir"`
	// DBFile is the database file name inside DataDir.
	DBFile string `yaml:"db_file"`
	// APIURL is the base URL of the auth backend.
	APIURL string `yaml:"api_url"`
	// Owner is recorded on workspace lists and items.
	Owner string `yaml:"owner"`
	// RequestTimeout bounds each backend call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// LogFile is where the TUI writes its log, relative to DataDir.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dataDir := ".givo"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".givo")
	}
	return &Config{
		DataDir:        dataDir,
		DBFile:         "givo_todo.db",
		APIURL:         "http://localhost:4000",
		Owner:          "me",
		RequestTimeout: 10 * time.Second,
		LogFile:        "givo.log",
	}
}

// Load reads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// HomePath returns ~/.givo/config.yaml.
func HomePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".givo", "config.yaml"), nil
}

// LoadFromHome loads configuration from ~/.givo/config.yaml.
func LoadFromHome() (*Config, error) {
	path, err := HomePath()
	if err != nil {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, nil
	}
	return Load(path)
}

// Save writes cfg to path, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GIVO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	// API_URL is honoured for compatibility with the mobile client's env.
	if v := os.Getenv("API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("GIVO_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("GIVO_OWNER"); v != "" {
		c.Owner = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(c.DBFile) == "" {
		return fmt.Errorf("db_file is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.APIURL)
	}
	return nil
}

// DBPath returns the full path of the todos database.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

// SnapshotDir returns the directory holding the state snapshot.
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "state")
}

// LogPath returns the full path of the log file.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}
