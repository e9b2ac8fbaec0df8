// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/todo"
)

// Store backends.
const (
	BackendREST   = "rest"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Store   StoreConfig    `yaml:"store"`
	UI      UIConfig       `yaml:"ui"`
	Folders []FolderConfig `yaml:"folders,omitempty"`
	Log     LogConfig      `yaml:"log"`
}

// StoreConfig selects and configures the item backend.
type StoreConfig struct {
	// Backend is "rest" (hosted datastore) or "sqlite" (local file).
	Backend string `yaml:"backend"`

	// URL is the hosted project URL, e.g. https://YOUR-PROJECT.supabase.co
	URL string `yaml:"url,omitempty"`

	// APIKey is used only when neither TASKDEX_API_KEY nor the keyring
	// holds a key.
	APIKey string `yaml:"api_key,omitempty"`

	Collection string `yaml:"collection,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode       bool   `yaml:"vim_mode"`
	WideMinWidth  int    `yaml:"wide_min_width,omitempty"`
	Notify        bool   `yaml:"notify"`
	MarkdownStyle string `yaml:"markdown_style,omitempty"` // glamour style name, "auto" by default
}

// FolderConfig defines one folder.
type FolderConfig struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon,omitempty"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	Path  string `yaml:"path,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:    BackendREST,
			Collection: "todos",
		},
		UI: UIConfig{
			VimMode:       true,
			WideMinWidth:  layout.DefaultWideMinWidth,
			Notify:        true,
			MarkdownStyle: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Uses XDG_CONFIG_HOME or defaults to ~/.config/taskdex/, creating it if
// it doesn't exist.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(base, "taskdex")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration at path. If the file doesn't exist,
// returns a default configuration.
func LoadFrom(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path.
func SaveTo(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendREST, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.backend must be %q or %q, got %q", BackendREST, BackendSQLite, c.Store.Backend))
	}

	if c.UI.WideMinWidth < 0 {
		errs = append(errs, errors.New("ui.wide_min_width cannot be negative"))
	}

	seen := make(map[int64]bool, len(c.Folders))
	for i, f := range c.Folders {
		if f.ID <= 0 {
			errs = append(errs, fmt.Errorf("folders[%d]: id must be positive", i))
		}
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("folders[%d]: name is required", i))
		}
		if seen[f.ID] {
			errs = append(errs, fmt.Errorf("folders[%d]: duplicate id %d", i, f.ID))
		}
		seen[f.ID] = true
	}

	return errors.Join(errs...)
}

// HasRemote returns true if the hosted backend is selected and has a URL.
func (c *Config) HasRemote() bool {
	return c.Store.Backend == BackendREST && c.Store.URL != ""
}

// TodoFolders returns the configured folders, or the defaults when none
// are configured.
func (c *Config) TodoFolders() []todo.Folder {
	if len(c.Folders) == 0 {
		return todo.DefaultFolders()
	}
	out := make([]todo.Folder, 0, len(c.Folders))
	for _, f := range c.Folders {
		out = append(out, todo.Folder{ID: f.ID, Name: f.Name, Icon: f.Icon})
	}
	return out
}

// SQLitePath returns the local database path, expanded.
func (c *Config) SQLitePath() (string, error) {
	if c.Store.SQLitePath != "" {
		return homedir.Expand(c.Store.SQLitePath)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskdex.db"), nil
}

// LogPath returns the log file path, expanded.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return homedir.Expand(c.Log.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskdex.log"), nil
}

// PrefsDir returns the directory holding persisted layout preferences.
func PrefsDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs"), nil
}
