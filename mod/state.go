package mod

// HostState represents the lifecycle state of a scripted mod host.
type HostState int

// Host states.
const (
	// StateUnloaded - the script has not been loaded.
	StateUnloaded HostState = iota

	// StateLoaded - the script ran but the mod is not enabled.
	StateLoaded

	// StateEnabled - the mod is enabled and its keybinds dispatch.
	StateEnabled

	// StateError - the host encountered an error.
	StateError
)

// String returns a string representation of the state.
func (s HostState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateEnabled:
		return "enabled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// IsUsable returns true if the host can be interacted with.
func (s HostState) IsUsable() bool {
	return s == StateLoaded || s == StateEnabled
}
