// Package config loads taskmgr settings through viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskmgr/internal/logging"
)

// AppName names the config and data directories.
const AppName = "taskmgr"

// EnvPrefix is prepended to environment overrides, e.g.
// TASKMGR_STORAGE_BACKEND for storage.backend.
const EnvPrefix = "TASKMGR"

// Config represents the complete taskmgr configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Display DisplayConfig `mapstructure:"display"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects where the task blob lives
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "memory" (default: "file")
	Backend string `mapstructure:"backend"`
	// Dir is the data directory. Empty means $XDG_DATA_HOME/taskmgr.
	// A leading ~/ is expanded.
	Dir string `mapstructure:"dir"`
	// QuotaBytes caps the total stored bytes (default: 5 MiB, 0 = unlimited)
	QuotaBytes int64 `mapstructure:"quota_bytes"`
}

// DisplayConfig controls how tasks are printed
type DisplayConfig struct {
	// DefaultFilter is the filter shown first: all, pending or completed
	DefaultFilter string `mapstructure:"default_filter"`
	// DefaultPriority pre-fills new tasks: low, medium or high
	DefaultPriority string `mapstructure:"default_priority"`
	// DateFormat is a Go time layout for due dates (default: "Jan 2, 2006")
	DateFormat string `mapstructure:"date_format"`
	// TitleWidth truncates titles in tables (default: 40, min: 10, max: 200)
	TitleWidth int `mapstructure:"title_width"`
}

// TUIConfig controls the interactive UI
type TUIConfig struct {
	// Watch redraws when another process changes the tasks (file backend only)
	Watch bool `mapstructure:"watch"`
	// ConfirmDelete asks before deleting a task
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Enabled writes taskmgr.log in the data directory (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is debug, info, warn or error (default: info)
	Level string `mapstructure:"level"`
	// MaxSizeMB rotates the log at this size (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated logs to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Rotation converts the logging settings for logging.NewLogger.
func (l LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{MaxSizeMB: l.MaxSizeMB, MaxBackups: l.MaxBackups}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    "file",
			Dir:        "",
			QuotaBytes: 5 * 1024 * 1024,
		},
		Display: DisplayConfig{
			DefaultFilter:   "all",
			DefaultPriority: "medium",
			DateFormat:      "Jan 2, 2006",
			TitleWidth:      40,
		},
		TUI: TUIConfig{
			Watch:         true,
			ConfirmDelete: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.quota_bytes", defaults.Storage.QuotaBytes)

	viper.SetDefault("display.default_filter", defaults.Display.DefaultFilter)
	viper.SetDefault("display.default_priority", defaults.Display.DefaultPriority)
	viper.SetDefault("display.date_format", defaults.Display.DateFormat)
	viper.SetDefault("display.title_width", defaults.Display.TitleWidth)

	viper.SetDefault("tui.watch", defaults.TUI.Watch)
	viper.SetDefault("tui.confirm_delete", defaults.TUI.ConfirmDelete)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if the
// loaded one is invalid.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/taskmgr, or ~/.local/share/taskmgr.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DataDir resolves the configured data directory.
func (s *StorageConfig) DataDir() string {
	if s.Dir == "" {
		return DefaultDataDir()
	}
	return expandHome(s.Dir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
