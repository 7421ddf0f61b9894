package mod

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Manifest describes a scripted mod's metadata and declared keybinds.
// It is read from a mod.json next to the mod's Lua entry point.
type Manifest struct {
	// Identity
	Name        string `json:"name"`        // Unique identifier (e.g. "photo-mode")
	Version     string `json:"version"`     // Semver (e.g. "1.2.0")
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"` // Short description
	Author      string `json:"author"`      // Author name
	License     string `json:"license"`     // SPDX license identifier
	Homepage    string `json:"homepage"`    // URL to mod homepage

	// Main is the relative path to the main Lua file (default: "init.lua").
	Main string `json:"main"`

	// Keybinds declares binds the mod registers, so hosts can surface and
	// persist them even before the script attaches callbacks.
	Keybinds []KeybindDecl `json:"keybinds"`

	// Internal: path to the mod directory.
	path string
}

// KeybindDecl declares a keybind in the manifest.
type KeybindDecl struct {
	Identifier       string `json:"identifier"`       // Stable identifier, unique within the mod
	Key              string `json:"key"`              // Default key, empty = unbound
	DisplayName      string `json:"displayName"`      // Display name (default: identifier)
	Description      string `json:"description"`      // Short description
	DescriptionTitle string `json:"descriptionTitle"` // Description heading
	Hidden           bool   `json:"hidden"`           // Hide from options UI
	NotRebindable    bool   `json:"notRebindable"`    // Forbid rebinding
}

// Validation errors.
var (
	ErrMissingName        = errors.New("manifest: name is required")
	ErrInvalidName        = errors.New("manifest: name must be alphanumeric with hyphens")
	ErrInvalidVersion     = errors.New("manifest: version must be valid semver")
	ErrInvalidMain        = errors.New("manifest: main must be a .lua file")
	ErrMissingKeybindID   = errors.New("manifest: keybind identifier is required")
	ErrDuplicateKeybindID = errors.New("manifest: duplicate keybind identifier")
)

// namePattern validates mod names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// semverPattern validates version strings (simplified semver).
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// LoadManifest loads and validates a mod manifest from a file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m.path = filepath.Dir(path)
	m.applyDefaults()

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// NewManifestMinimal creates a minimal manifest for single-file mods.
func NewManifestMinimal(name, path string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: "0.0.0",
		Main:    "init.lua",
		path:    path,
	}
}

// applyDefaults sets default values for optional fields.
func (m *Manifest) applyDefaults() {
	if m.Main == "" {
		m.Main = "init.lua"
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
}

// Validate checks that the manifest is valid.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}

	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, m.Version)
	}

	if m.Main != "" && filepath.Ext(m.Main) != ".lua" {
		return fmt.Errorf("%w: %s", ErrInvalidMain, m.Main)
	}

	seen := make(map[string]bool, len(m.Keybinds))
	for i, kb := range m.Keybinds {
		if kb.Identifier == "" {
			return fmt.Errorf("%w at index %d", ErrMissingKeybindID, i)
		}
		if seen[kb.Identifier] {
			return fmt.Errorf("%w: %s", ErrDuplicateKeybindID, kb.Identifier)
		}
		seen[kb.Identifier] = true
	}

	return nil
}

// Path returns the path to the mod directory.
func (m *Manifest) Path() string {
	return m.path
}

// MainPath returns the full path to the main Lua file.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.path, m.Main)
}

// String returns a display string for the manifest.
func (m *Manifest) String() string {
	display := m.DisplayName
	if display == "" {
		display = m.Name
	}
	return fmt.Sprintf("%s v%s", display, m.Version)
}
