// Package theme cycles and persists the light/dark/auto theme.
package theme

import (
	"time"

	"picgrid/internal/domain"
	"picgrid/internal/eventbus"
	"picgrid/internal/logging"
	"picgrid/internal/storage"
)

// SettingsVersion is written into exported settings
const SettingsVersion = "1.0"

// Chrome colors for the header bar, per effective theme
const (
	ChromeLight = "#f5f5f5"
	ChromeDark  = "#1e1e2e"
)

// Applier performs the presentation side effects of a theme change
type Applier interface {
	ApplyTheme(effective domain.ThemeMode, chromeColor string)
}

// ApplierFunc adapts a function to Applier
type ApplierFunc func(effective domain.ThemeMode, chromeColor string)

func (f ApplierFunc) ApplyTheme(effective domain.ThemeMode, chromeColor string) {
	f(effective, chromeColor)
}

// Settings is the export/import document
type Settings struct {
	Theme     string    `json:"theme"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

var cycle = map[domain.ThemeMode]domain.ThemeMode{
	domain.ThemeLight: domain.ThemeDark,
	domain.ThemeDark:  domain.ThemeAuto,
	domain.ThemeAuto:  domain.ThemeLight,
}

// Controller holds the theme mode
type Controller struct {
	mode       domain.ThemeMode
	systemDark bool
	store      storage.Store
	applier    Applier
	bus        eventbus.EventBus
	now        func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSystemDark sets the initial system preference
func WithSystemDark(dark bool) Option {
	return func(c *Controller) { c.systemDark = dark }
}

// New creates a controller seeded from store: the stored theme when valid,
// otherwise auto. A stored system-appearance overrides WithSystemDark.
// Nothing is applied until Apply is called.
func New(store storage.Store, applier Applier, bus eventbus.EventBus, opts ...Option) *Controller {
	c := &Controller{
		mode:    domain.ThemeAuto,
		store:   store,
		applier: applier,
		bus:     eventbus.OrNull(bus),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = storage.NewMemory()
	}

	if v, ok, err := c.store.Get(storage.KeyTheme); err != nil {
		logging.Warn("Theme: failed to read stored theme: %v", err)
	} else if ok && domain.ThemeMode(v).Valid() {
		c.mode = domain.ThemeMode(v)
	}
	if v, ok, err := c.store.Get(storage.KeySystemAppearance); err == nil && ok {
		if dark, valid := parseAppearance(v); valid {
			c.systemDark = dark
		}
	}
	return c
}

// Mode returns the selected mode
func (c *Controller) Mode() domain.ThemeMode {
	return c.mode
}

// Effective resolves auto against the system preference
func (c *Controller) Effective() domain.ThemeMode {
	return resolve(c.mode, c.systemDark)
}

// SystemDark reports the current system preference
func (c *Controller) SystemDark() bool {
	return c.systemDark
}

func resolve(mode domain.ThemeMode, systemDark bool) domain.ThemeMode {
	if mode != domain.ThemeAuto {
		return mode
	}
	if systemDark {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// Apply applies and announces the current mode without persisting it
func (c *Controller) Apply() {
	effective := c.Effective()
	chrome := ChromeLight
	if effective == domain.ThemeDark {
		chrome = ChromeDark
	}
	if c.applier != nil {
		c.applier.ApplyTheme(effective, chrome)
	}
	c.bus.Publish(domain.ThemeChangedEvent{
		Theme:          c.mode,
		EffectiveTheme: effective,
		Timestamp:      c.now(),
	})
}

// Toggle cycles light, dark, auto
func (c *Controller) Toggle() {
	c.SetTheme(string(cycle[c.mode]))
}

// SetTheme selects, persists and applies value. Values other than
// light, dark and auto are logged and ignored.
func (c *Controller) SetTheme(value string) bool {
	mode := domain.ThemeMode(value)
	if !mode.Valid() {
		logging.Warn("Theme: ignoring invalid theme %q", value)
		return false
	}
	c.mode = mode
	if err := c.store.Set(storage.KeyTheme, value); err != nil {
		logging.Warn("Theme: failed to persist theme: %v", err)
	}
	c.Apply()
	return true
}

// StorageChanged handles a value written by another picgrid process
func (c *Controller) StorageChanged(key, value string) {
	switch key {
	case storage.KeyTheme:
		mode := domain.ThemeMode(value)
		if !mode.Valid() {
			logging.Warn("Theme: ignoring invalid stored theme %q", value)
			return
		}
		c.mode = mode
		c.Apply()
	case storage.KeySystemAppearance:
		if dark, ok := parseAppearance(value); ok {
			c.SystemChanged(dark)
		}
	}
}

// SystemChanged records a new system preference. It only re-applies in auto mode.
func (c *Controller) SystemChanged(dark bool) {
	c.systemDark = dark
	if c.mode == domain.ThemeAuto {
		c.Apply()
	}
}

// ExportSettings returns the current settings document
func (c *Controller) ExportSettings() Settings {
	return Settings{
		Theme:     string(c.mode),
		Timestamp: c.now(),
		Version:   SettingsVersion,
	}
}

// ImportSettings applies s after validating its theme
func (c *Controller) ImportSettings(s Settings) bool {
	if !domain.ThemeMode(s.Theme).Valid() {
		logging.Warn("Theme: rejecting imported theme %q", s.Theme)
		return false
	}
	return c.SetTheme(s.Theme)
}

func parseAppearance(v string) (dark bool, ok bool) {
	switch v {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

// Appearance is the stored form of a system preference
func Appearance(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
