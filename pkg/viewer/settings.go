package viewer

import (
	"fmt"

	"github.com/gonewx/bastion/pkg/logger"
	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings are the debug viewer preferences kept between runs.
type Settings struct {
	PixelsPerMeter float64 `yaml:"pixelsPerMeter"`
	TimeScale      float64 `yaml:"timeScale"`
	ShowGrid       bool    `yaml:"showGrid"`
	ShowRanges     bool    `yaml:"showRanges"`
	ShowHealth     bool    `yaml:"showHealth"`
	Structure      int     `yaml:"structure"` // template placed by a left click
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() *Settings {
	return &Settings{
		PixelsPerMeter: 16,
		TimeScale:      1,
		ShowGrid:       true,
		ShowRanges:     false,
		ShowHealth:     true,
		Structure:      1,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "debugview"

	minTimeScale = 0.25
	maxTimeScale = 8
)

// SettingsManager loads and saves Settings through gdata. A nil gdata manager
// keeps settings in memory only.
type SettingsManager struct {
	store    *gdata.Manager
	settings *Settings
	log      *logrus.Entry
}

// NewSettingsManager creates a manager and loads saved settings. A failed
// load is logged and falls back to defaults.
func NewSettingsManager(store *gdata.Manager, log logrus.FieldLogger) *SettingsManager {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
		log:      logger.For(log, "SettingsManager"),
	}
	if err := sm.Load(); err != nil {
		sm.log.WithError(err).Warn("[SettingsManager] failed to load settings, using defaults")
	}
	return sm
}

// Load replaces the current settings with the saved ones, if any.
func (sm *SettingsManager) Load() error {
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TimeScale = clampTimeScale(loaded.TimeScale)
	sm.settings = loaded
	sm.log.Debug("[SettingsManager] settings loaded")
	return nil
}

// Save persists the current settings. Without a store it does nothing.
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	sm.log.Debug("[SettingsManager] settings saved")
	return nil
}

// Settings returns the live settings.
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

// ScaleTime multiplies the simulation speed by factor, clamped to [0.25, 8].
func (sm *SettingsManager) ScaleTime(factor float64) {
	sm.settings.TimeScale = clampTimeScale(sm.settings.TimeScale * factor)
}

func clampTimeScale(v float64) float64 {
	if v < minTimeScale {
		return minTimeScale
	}
	if v > maxTimeScale {
		return maxTimeScale
	}
	return v
}
