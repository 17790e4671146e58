package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is the color theme name ("default" or "mono").
	Theme string `mapstructure:"theme" yaml:"theme"`

	// ReminderPollSec is how often (in seconds) the reminder alert
	// poller re-checks the reminder table.
	ReminderPollSec int `mapstructure:"reminder_poll_sec" yaml:"reminder_poll_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// MediaDir is where attached photo/audio files are stored.
	MediaDir string `mapstructure:"media_dir" yaml:"media_dir"`

	// ExportDir is where entry exports (.eml files) are written.
	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`

	// AppLock enables the keyring-backed passcode prompt at startup.
	AppLock bool `mapstructure:"app_lock" yaml:"app_lock"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/digitaldiary/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "digitaldiary", "config.yaml")
}

// defaultDataDir returns the base directory for application data.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "digitaldiary")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	data := defaultDataDir()
	return &AppConfig{
		DatabasePath: filepath.Join(data, "diary_database.db"),
		MediaDir:     filepath.Join(data, "media"),
		ExportDir:    filepath.Join(data, "exports"),
		AppLock:      false,
		Display: DisplayConfig{
			Theme:           "default",
			ReminderPollSec: 60,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	data := defaultDataDir()
	v.SetDefault("database_path", filepath.Join(data, "diary_database.db"))
	v.SetDefault("media_dir", filepath.Join(data, "media"))
	v.SetDefault("export_dir", filepath.Join(data, "exports"))
	v.SetDefault("app_lock", false)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.reminder_poll_sec", 60)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.ReminderPollSec <= 0 {
		cfg.Display.ReminderPollSec = 60
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("media_dir", cfg.MediaDir)
	v.Set("export_dir", cfg.ExportDir)
	v.Set("app_lock", cfg.AppLock)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
