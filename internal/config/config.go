package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"picgrid/internal/eventbus"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	DataSource string          `toml:"data_source"`
	Locale     string          `toml:"locale"`
	Filters    FilterSettings  `toml:"filters"`
	Gallery    GallerySettings `toml:"gallery"`
	Modal      ModalSettings   `toml:"modal"`
	Gestures   GestureSettings `toml:"gestures"`
	Storage    StorageSettings `toml:"storage"`
	Logging    LoggingSettings `toml:"logging"`
}

// FilterSettings configures search input handling
type FilterSettings struct {
	SearchDebounceMS int `toml:"search_debounce_ms"`
}

// GallerySettings configures the card grid
type GallerySettings struct {
	DefaultView      string `toml:"default_view"`
	ResizeDebounceMS int    `toml:"resize_debounce_ms"`
	ProximityRows    int    `toml:"proximity_rows"`
	ThumbWidth       int    `toml:"thumb_width"`
	ThumbHeight      int    `toml:"thumb_height"`
}

// ModalSettings configures the full-screen viewer
type ModalSettings struct {
	CloseGraceMS int  `toml:"close_grace_ms"`
	Preload      bool `toml:"preload"`
}

// GestureSettings are the mouse-drag swipe thresholds, in cells and milliseconds
type GestureSettings struct {
	MinDistance   int     `toml:"min_distance"`
	MinVelocity   float64 `toml:"min_velocity"`
	MaxDurationMS int     `toml:"max_duration_ms"`
	CloseDistance int     `toml:"close_distance"`
}

// StorageSettings configures the settings database
type StorageSettings struct {
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// LoggingSettings configures the log file
type LoggingSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// SearchDebounce returns the search quiet window
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Filters.SearchDebounceMS) * time.Millisecond
}

// ResizeDebounce returns the resize quiet window
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.Gallery.ResizeDebounceMS) * time.Millisecond
}

// CloseGrace returns the delay before the viewer releases its image
func (c *Config) CloseGrace() time.Duration {
	return time.Duration(c.Modal.CloseGraceMS) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/picgrid/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "picgrid", "config.toml")
}

// NewConfigService creates a config service for path. An empty path uses DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file. A missing file yields defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		applyEnv(cfg)
		err = nil
	}
	if err != nil {
		return nil, err
	}

	// Publish ConfigLoaded event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Fields absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	normalize(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
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
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		DataSource: "gallery.json",
		Locale:     "en",
		Filters: FilterSettings{
			SearchDebounceMS: 300,
		},
		Gallery: GallerySettings{
			DefaultView:      "grid",
			ResizeDebounceMS: 400,
			ProximityRows:    1,
			ThumbWidth:       20,
			ThumbHeight:      8,
		},
		Modal: ModalSettings{
			CloseGraceMS: 300,
			Preload:      true,
		},
		Gestures: GestureSettings{
			MinDistance:   6,
			MinVelocity:   0.02,
			MaxDurationMS: 600,
			CloseDistance: 8,
		},
		Logging: LoggingSettings{
			File:  "picgrid.log",
			Level: "info",
		},
	}
}

// normalize replaces out-of-range values with defaults
func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.Filters.SearchDebounceMS <= 0 {
		cfg.Filters.SearchDebounceMS = def.Filters.SearchDebounceMS
	}
	if cfg.Gallery.DefaultView != "grid" && cfg.Gallery.DefaultView != "list" {
		cfg.Gallery.DefaultView = def.Gallery.DefaultView
	}
	if cfg.Gallery.ResizeDebounceMS <= 0 {
		cfg.Gallery.ResizeDebounceMS = def.Gallery.ResizeDebounceMS
	}
	if cfg.Gallery.ProximityRows < 0 {
		cfg.Gallery.ProximityRows = def.Gallery.ProximityRows
	}
	if cfg.Gallery.ThumbWidth < 4 {
		cfg.Gallery.ThumbWidth = def.Gallery.ThumbWidth
	}
	if cfg.Gallery.ThumbHeight < 2 {
		cfg.Gallery.ThumbHeight = def.Gallery.ThumbHeight
	}
	if cfg.Modal.CloseGraceMS < 0 {
		cfg.Modal.CloseGraceMS = def.Modal.CloseGraceMS
	}
	if cfg.Gestures.MinDistance <= 0 {
		cfg.Gestures.MinDistance = def.Gestures.MinDistance
	}
	if cfg.Gestures.MinVelocity <= 0 {
		cfg.Gestures.MinVelocity = def.Gestures.MinVelocity
	}
	if cfg.Gestures.MaxDurationMS <= 0 {
		cfg.Gestures.MaxDurationMS = def.Gestures.MaxDurationMS
	}
	if cfg.Gestures.CloseDistance <= 0 {
		cfg.Gestures.CloseDistance = def.Gestures.CloseDistance
	}
}

// applyEnv applies PICGRID_DATA. LOG_LEVEL and DEBUG are read by the logging package.
func applyEnv(cfg *Config) {
	if data := os.Getenv("PICGRID_DATA"); data != "" {
		cfg.DataSource = data
	}
}
