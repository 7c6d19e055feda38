// Package settings persists the demo's user preferences (last chosen
// direction, count, auto-play) across runs via gdata. Particle state is
// never persisted; only what the user picked in the UI.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/LynchzDEV/lynchz-confetti/internal/sim"
)

// Settings are the persisted demo preferences.
type Settings struct {
	Direction string `yaml:"direction"`
	Count     int    `yaml:"count"`
	AutoPlay  bool   `yaml:"autoPlay"`
}

// Default returns the preferences used on first run.
func Default() *Settings {
	return &Settings{
		Direction: string(sim.DirectionCenter),
		Count:     50,
		AutoPlay:  false,
	}
}

// gdata storage location.
const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// Manager loads and saves Settings through a gdata.Manager. A nil
// manager puts it in degraded mode: settings live in memory only and
// Save is a successful no-op.
type Manager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

// NewManager creates a Manager and loads any previously saved
// preferences. A load failure is not fatal; defaults are used and the
// error is logged.
func NewManager(gdataManager *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		settings:     Default(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] Warning: failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load reads preferences from gdata, falling back to defaults when the
// manager is nil, the property does not exist, or the data is invalid.
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.settings = Default()
		return nil
	}
	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	// Sanitize: a stale file must not smuggle in an invalid direction.
	if _, err := sim.ParseDirection(loaded.Direction); err != nil {
		loaded.Direction = Default().Direction
	}
	if loaded.Count < 0 {
		loaded.Count = Default().Count
	}

	m.settings = &loaded
	return nil
}

// Save writes the current preferences to gdata. In degraded mode it
// returns nil without writing anything.
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get returns the current in-memory preferences.
func (m *Manager) Get() *Settings {
	return m.settings
}

// SetDirection records the last used direction. Invalid tokens are
// ignored. Call Save to persist.
func (m *Manager) SetDirection(dir sim.Direction) {
	if _, err := sim.ParseDirection(string(dir)); err != nil {
		return
	}
	m.settings.Direction = string(dir)
}

// SetCount records the last used particle count. Negative values are
// ignored. Call Save to persist.
func (m *Manager) SetCount(count int) {
	if count < 0 {
		return
	}
	m.settings.Count = count
}

// SetAutoPlay records the auto-play toggle. Call Save to persist.
func (m *Manager) SetAutoPlay(enabled bool) {
	m.settings.AutoPlay = enabled
}
