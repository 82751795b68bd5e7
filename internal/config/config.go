package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"imagepicker/internal/domain"
	"imagepicker/internal/eventbus"
)

// FileName is the per-directory config file name
const FileName = ".imagepicker.toml"

// EnvPrefix prefixes environment overrides, e.g. IMAGEPICKER_UI_THUMB_WIDTH
const EnvPrefix = "IMAGEPICKER"

// Config represents the application configuration
type Config struct {
	Version    int    `toml:"version" mapstructure:"version"`
	BaseDir    string `toml:"base_dir" mapstructure:"base_dir"`
	Multiple   bool   `toml:"multiple" mapstructure:"multiple"`
	SniffIndex bool   `toml:"sniff_index" mapstructure:"sniff_index"`
	// Preselected holds either plain sources or {source, position_index} tables
	Preselected []any      `toml:"preselected" mapstructure:"preselected"`
	UISettings  UISettings `toml:"ui" mapstructure:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ThumbWidth     int    `toml:"thumb_width" mapstructure:"thumb_width"`
	ThumbHeight    int    `toml:"thumb_height" mapstructure:"thumb_height"`
	Filter         string `toml:"filter" mapstructure:"filter"`
	ShowLabels     bool   `toml:"show_labels" mapstructure:"show_labels"`
	AutosaveOnExit bool   `toml:"autosave_on_exit" mapstructure:"autosave_on_exit"`
}

// SetPicks stores picks as the preselection, keeping their indexes
func (c *Config) SetPicks(picks []domain.Pick) {
	c.Preselected = make([]any, 0, len(picks))
	for _, p := range picks {
		c.Preselected = append(c.Preselected, map[string]any{
			"source":         p.Source,
			"position_index": p.PositionIndex,
		})
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service backed by the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "imagepicker", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the user-wide config file, which seeds new per-directory configs.
// Defaults are returned when there is none.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{BaseDir: cfg.BaseDir})
		return cfg, nil
	}

	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Values missing from the
// file come from DefaultConfig; IMAGEPICKER_* environment variables win over both.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Preselected == nil {
		cfg.Preselected = []any{}
	}

	cs.publish(eventbus.ConfigLoadedEvent{BaseDir: cfg.BaseDir, Path: path})
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cs.publish(eventbus.ConfigSavedEvent{Path: path})
	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// newViper returns a viper instance primed with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("base_dir", def.BaseDir)
	v.SetDefault("multiple", def.Multiple)
	v.SetDefault("sniff_index", def.SniffIndex)
	v.SetDefault("preselected", def.Preselected)
	v.SetDefault("ui.thumb_width", def.UISettings.ThumbWidth)
	v.SetDefault("ui.thumb_height", def.UISettings.ThumbHeight)
	v.SetDefault("ui.filter", def.UISettings.Filter)
	v.SetDefault("ui.show_labels", def.UISettings.ShowLabels)
	v.SetDefault("ui.autosave_on_exit", def.UISettings.AutosaveOnExit)
	return v
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:     1,
		BaseDir:     homeDir,
		Multiple:    true,
		SniffIndex:  false,
		Preselected: []any{},
		UISettings: UISettings{
			ThumbWidth:     16,
			ThumbHeight:    8,
			Filter:         "both",
			ShowLabels:     true,
			AutosaveOnExit: false,
		},
	}
}
