package mod

import "errors"

// Mod system errors.
var (
	// ErrModNotFound is returned when a mod cannot be located.
	ErrModNotFound = errors.New("mod not found")

	// ErrNilMod is returned when a nil mod is given to the registry.
	ErrNilMod = errors.New("mod is nil")

	// ErrAlreadyRegistered is returned when a mod with the same name is
	// already in the registry.
	ErrAlreadyRegistered = errors.New("mod is already registered")

	// ErrNilKeybind is returned when registering a nil keybind.
	ErrNilKeybind = errors.New("keybind is nil")

	// ErrDuplicateKeybind is returned when a mod already has a keybind
	// with the same identifier.
	ErrDuplicateKeybind = errors.New("duplicate keybind identifier")

	// ErrNilManifest is returned when a nil manifest is provided.
	ErrNilManifest = errors.New("manifest is nil")

	// ErrNoEntryPoint is returned when a mod directory has no valid entry
	// point.
	ErrNoEntryPoint = errors.New("mod has no entry point (init.lua)")

	// ErrAlreadyLoaded is returned when loading an already loaded host.
	ErrAlreadyLoaded = errors.New("mod is already loaded")

	// ErrNotLoaded is returned when using an unloaded host.
	ErrNotLoaded = errors.New("mod is not loaded")
)
