// Package settings persists per-mod state: whether the mod is enabled and
// which keys its keybinds are currently bound to.
//
// Each mod gets one JSON file. Saved keys are applied on load so rebinds
// survive restarts; a null key unbinds. Non-rebindable binds are never
// touched by settings.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ry0511/mods-base/input"
	"github.com/Ry0511/mods-base/mod"
)

// ModSettings is the on-disk shape of a mod's settings file.
type ModSettings struct {
	Enabled  bool               `json:"enabled"`
	Keybinds map[string]*string `json:"keybinds,omitempty"`
}

// FileFor returns the settings file path for a mod name under dir.
func FileFor(dir, modName string) string {
	return filepath.Join(dir, modName+".json")
}

// Load reads the mod's settings file and applies it: saved keys are applied
// to matching rebindable keybinds (null unbinds) and the enable flag is
// restored. A missing or unreadable file is not an error; the mod simply
// keeps its defaults.
func Load(m *mod.Mod) error {
	if m.SettingsFile == "" {
		return nil
	}

	data, err := os.ReadFile(m.SettingsFile)
	if err != nil {
		return nil
	}

	var s ModSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}

	Apply(m, s)
	return nil
}

// Apply applies settings to a mod in place.
func Apply(m *mod.Mod, s ModSettings) {
	for _, kb := range m.Keybinds() {
		saved, ok := s.Keybinds[kb.Identifier]
		if !ok {
			continue
		}
		if saved == nil {
			_ = kb.Unbind()
			continue
		}
		// Rebind fails only for non-rebindable binds, which settings
		// must not override.
		_ = kb.Rebind(input.NormalizeKey(*saved))
	}

	m.SetEnabled(s.Enabled)
}

// Snapshot captures the mod's current persistable state.
func Snapshot(m *mod.Mod) ModSettings {
	s := ModSettings{
		Enabled:  m.Enabled(),
		Keybinds: make(map[string]*string),
	}
	for _, kb := range m.Keybinds() {
		if !kb.IsRebindable {
			continue
		}
		if key := kb.Key(); key != "" {
			s.Keybinds[kb.Identifier] = &key
		} else {
			s.Keybinds[kb.Identifier] = nil
		}
	}
	return s
}

// Save writes the mod's current enable state and rebindable keys to its
// settings file, creating the directory if needed.
func Save(m *mod.Mod) error {
	if m.SettingsFile == "" {
		return nil
	}

	data, err := json.MarshalIndent(Snapshot(m), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings for %s: %w", m.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(m.SettingsFile), 0o755); err != nil {
		return fmt.Errorf("creating settings dir for %s: %w", m.Name, err)
	}
	if err := os.WriteFile(m.SettingsFile, data, 0o644); err != nil {
		return fmt.Errorf("writing settings for %s: %w", m.Name, err)
	}
	return nil
}
