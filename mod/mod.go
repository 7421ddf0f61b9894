package mod

import (
	"fmt"
	"sync"

	"github.com/Ry0511/mods-base/keybind"
)

// Mod is one independently loaded unit of gameplay-modifying code. It owns
// zero or more keybinds in registration order; that order is the dispatch
// order within the mod.
type Mod struct {
	// Name is the unique mod name.
	Name string

	// Version is the mod's version string.
	Version string

	// Author is the mod author.
	Author string

	// Description is a short description of the mod.
	Description string

	// SettingsFile is the path of the mod's settings file, or empty if
	// the mod has no persisted settings.
	SettingsFile string

	mu       sync.RWMutex
	enabled  bool
	keybinds []*keybind.Keybind
	byID     map[string]*keybind.Keybind
}

// New creates a mod with the given name.
func New(name string) *Mod {
	return &Mod{
		Name: name,
		byID: make(map[string]*keybind.Keybind),
	}
}

// RegisterKeybind appends a keybind to the mod's list. Identifiers must be
// unique within the mod.
func (m *Mod) RegisterKeybind(kb *keybind.Keybind) error {
	if kb == nil {
		return ErrNilKeybind
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.byID == nil {
		m.byID = make(map[string]*keybind.Keybind)
	}
	if _, exists := m.byID[kb.Identifier]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKeybind, kb.Identifier)
	}

	m.byID[kb.Identifier] = kb
	m.keybinds = append(m.keybinds, kb)
	return nil
}

// Keybind returns the keybind with the given identifier.
func (m *Mod) Keybind(identifier string) (*keybind.Keybind, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kb, ok := m.byID[identifier]
	return kb, ok
}

// Keybinds returns the mod's keybinds in registration order.
func (m *Mod) Keybinds() []*keybind.Keybind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*keybind.Keybind{}, m.keybinds...)
}

// ClearKeybinds removes every keybind. Used when a scripted mod unloads.
func (m *Mod) ClearKeybinds() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keybinds = nil
	m.byID = make(map[string]*keybind.Keybind)
}

// Enabled reports whether the mod is enabled.
func (m *Mod) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SetEnabled records the mod's enable state.
func (m *Mod) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// String returns a display string for the mod.
func (m *Mod) String() string {
	if m.Version == "" {
		return m.Name
	}
	return fmt.Sprintf("%s v%s", m.Name, m.Version)
}
