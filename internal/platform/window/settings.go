package window

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the window preferences kept between sessions.
type Settings struct {
	Fullscreen bool `yaml:"fullscreen"`
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{Width: 576, Height: 512}
}

const (
	settingsObject   = "window"
	settingsProperty = "settings"
)

// SettingsManager loads and saves Settings through gdata. A nil gdata
// manager keeps the settings in memory only.
type SettingsManager struct {
	data     *gdata.Manager
	settings Settings
	logger   *log.Logger
}

// OpenSettings opens the per-user data directory for appName. When the
// directory cannot be opened the returned manager works in memory.
func OpenSettings(appName string, logger *log.Logger) *SettingsManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("settings are not persisted", "err", err)
		m = nil
	}
	return NewSettingsManager(m, logger)
}

// NewSettingsManager wraps m and loads the saved settings, falling back
// to the defaults on any error.
func NewSettingsManager(m *gdata.Manager, logger *log.Logger) *SettingsManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sm := &SettingsManager{data: m, settings: DefaultSettings(), logger: logger}
	if err := sm.Load(); err != nil {
		logger.Warn("cannot load window settings, using defaults", "err", err)
	}
	return sm
}

// Load reads the saved settings. Missing settings are not an error.
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.data == nil || !sm.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	raw, err := sm.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("window: load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("window: decode settings: %w", err)
	}
	if loaded.Width <= 0 || loaded.Height <= 0 {
		loaded.Width, loaded.Height = DefaultSettings().Width, DefaultSettings().Height
	}
	sm.settings = loaded
	return nil
}

// Save persists the current settings. It is a no-op in memory mode.
func (sm *SettingsManager) Save() error {
	if sm.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("window: encode settings: %w", err)
	}
	if err := sm.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("window: save settings: %w", err)
	}
	sm.logger.Debug("window settings saved", "fullscreen", sm.settings.Fullscreen)
	return nil
}

// Settings returns a copy of the current settings.
func (sm *SettingsManager) Settings() Settings {
	return sm.settings
}

// SetFullscreen changes the fullscreen preference in memory.
func (sm *SettingsManager) SetFullscreen(on bool) {
	sm.settings.Fullscreen = on
}

// SetSize records the last window size. Non-positive sizes are ignored.
func (sm *SettingsManager) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sm.settings.Width, sm.settings.Height = w, h
}
