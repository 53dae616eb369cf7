// Package config loads application settings from defaults, an optional YAML
// file and CHECKLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/checklist/internal/reorder"
	"github.com/alexisbeaulieu97/checklist/internal/validation"
)

// EnvPrefix prefixes environment overrides, e.g. CHECKLIST_LOG_LEVEL.
const EnvPrefix = "CHECKLIST"

// Config is the resolved application configuration.
type Config struct {
	DataDir string        `mapstructure:"data_dir" validate:"notblank"`
	Log     LogConfig     `mapstructure:"log"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Samples SamplesConfig `mapstructure:"samples"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// LogConfig controls the log file written by the terminal UI.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"loglevel"`
}

// EditorConfig sizes the rows of the step list, in terminal cells.
type EditorConfig struct {
	RowHeight  int `mapstructure:"row_height" validate:"min=1,max=8"`
	RowSpacing int `mapstructure:"row_spacing" validate:"min=0,max=4"`
}

// SamplesConfig toggles seeding of the bundled sample templates.
type SamplesConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TUIConfig holds interactive preferences.
type TUIConfig struct {
	ConfirmDeletes bool `mapstructure:"confirm_deletes"`
	CompletionBell bool `mapstructure:"completion_bell"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Log:     LogConfig{Level: "info"},
		Editor:  EditorConfig{RowHeight: 1, RowSpacing: 0},
		Samples: SamplesConfig{Enabled: true},
		TUI:     TUIConfig{ConfirmDeletes: true, CompletionBell: true},
	}
}

// SetDefaults registers the built-in values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("editor.row_height", defaults.Editor.RowHeight)
	v.SetDefault("editor.row_spacing", defaults.Editor.RowSpacing)
	v.SetDefault("samples.enabled", defaults.Samples.Enabled)
	v.SetDefault("tui.confirm_deletes", defaults.TUI.ConfirmDeletes)
	v.SetDefault("tui.completion_bell", defaults.TUI.CompletionBell)
}

// NewViper builds a viper instance with defaults, environment overrides and
// the config file. An explicit configFile must exist; the default location is
// optional.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, validation.Convert(err, "config")
	}
	cfg.DataDir = expandHome(cfg.DataDir)

	if err := validation.Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Geometry converts the editor settings into step list geometry.
func (c *Config) Geometry() reorder.Geometry {
	return reorder.Geometry{RowHeight: float64(c.Editor.RowHeight), RowSpacing: float64(c.Editor.RowSpacing)}
}

// DatabasePath is the SQLite file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "checklist.db")
}

// LogPath is the log file used while the terminal UI owns the screen.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "checklist.log")
}

// ConfigDir returns $XDG_CONFIG_HOME/checklist, falling back to ~/.config/checklist.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "checklist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".checklist"
	}
	return filepath.Join(home, ".config", "checklist")
}

// ConfigFile is the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/checklist, falling back to ~/.local/share/checklist.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "checklist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".checklist"
	}
	return filepath.Join(home, ".local", "share", "checklist")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
