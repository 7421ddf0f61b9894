package mod

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ry0511/mods-base/input"
	"github.com/Ry0511/mods-base/keybind"
	modlua "github.com/Ry0511/mods-base/mod/lua"
)

// Host manages a single scripted mod's Lua state and lifecycle. Keybinds
// the script registers are attached to the host's Mod, which is what gets
// added to the Registry.
type Host struct {
	mu sync.Mutex

	manifest  *Manifest
	mod       *Mod
	state     *modlua.State
	hostState HostState
	err       error
	logger    zerolog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used for script errors.
func WithLogger(logger zerolog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// NewHost creates a host for the given manifest.
func NewHost(manifest *Manifest, opts ...HostOption) (*Host, error) {
	if manifest == nil {
		return nil, ErrNilManifest
	}

	m := New(manifest.Name)
	m.Version = manifest.Version
	m.Author = manifest.Author
	m.Description = manifest.Description

	h := &Host{
		manifest:  manifest,
		mod:       m,
		hostState: StateUnloaded,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Mod returns the mod backing this host.
func (h *Host) Mod() *Mod {
	return h.mod
}

// Manifest returns the mod manifest.
func (h *Host) Manifest() *Manifest {
	return h.manifest
}

// State returns the current lifecycle state.
func (h *Host) State() HostState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hostState
}

// Err returns the error that put the host into StateError, if any.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Load creates the sandboxed Lua state, installs the mods API, registers
// manifest-declared keybinds and runs the main chunk. Keybinds the chunk
// registers are attached to the host's Mod as they are declared.
func (h *Host) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hostState != StateUnloaded {
		return fmt.Errorf("mod %q: %w", h.mod.Name, ErrAlreadyLoaded)
	}

	// Manifest-declared binds exist even before the script attaches
	// callbacks, so settings and UIs can see them.
	for _, decl := range h.manifest.Keybinds {
		if err := h.mod.RegisterKeybind(declToKeybind(decl)); err != nil {
			h.hostState = StateError
			h.err = err
			return err
		}
	}

	h.state = modlua.NewState()
	h.installAPI()

	if err := h.state.DoFile(h.manifest.MainPath()); err != nil {
		h.state.Close()
		h.state = nil
		h.mod.ClearKeybinds()
		h.hostState = StateError
		h.err = fmt.Errorf("failed to load mod %q: %w", h.mod.Name, err)
		return h.err
	}

	h.hostState = StateLoaded
	h.err = nil
	return nil
}

// Enable calls the script's optional on_enable function and marks the mod
// enabled.
func (h *Host) Enable(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hostState != StateLoaded {
		return fmt.Errorf("mod %q: %w", h.mod.Name, ErrNotLoaded)
	}

	if h.state.HasFunction("on_enable") {
		if _, err := h.state.Call("on_enable"); err != nil {
			h.hostState = StateError
			h.err = err
			return err
		}
	}

	h.mod.SetEnabled(true)
	h.hostState = StateEnabled
	return nil
}

// Disable calls the script's optional on_disable function and marks the
// mod disabled. A failing on_disable is logged, not returned; the mod is
// disabled regardless.
func (h *Host) Disable(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hostState != StateEnabled {
		return nil
	}

	if h.state.HasFunction("on_disable") {
		if _, err := h.state.Call("on_disable"); err != nil {
			h.logger.Warn().Err(err).Str("mod", h.mod.Name).Msg("on_disable failed")
		}
	}

	h.mod.SetEnabled(false)
	h.hostState = StateLoaded
	return nil
}

// Unload disables the mod if needed, closes the Lua state and removes the
// mod's keybinds.
func (h *Host) Unload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hostState == StateUnloaded {
		return nil
	}

	if h.hostState == StateEnabled && h.state.HasFunction("on_disable") {
		if _, err := h.state.Call("on_disable"); err != nil {
			h.logger.Warn().Err(err).Str("mod", h.mod.Name).Msg("on_disable failed")
		}
	}

	if h.state != nil {
		h.state.Close()
		h.state = nil
	}

	h.mod.SetEnabled(false)
	h.mod.ClearKeybinds()
	h.hostState = StateUnloaded
	h.err = nil
	return nil
}

// declToKeybind builds a callback-less keybind from a manifest declaration.
func declToKeybind(decl KeybindDecl) *keybind.Keybind {
	opts := make([]keybind.Option, 0, 4)
	if decl.DisplayName != "" {
		opts = append(opts, keybind.WithDisplayName(decl.DisplayName))
	}
	if decl.Description != "" {
		opts = append(opts, keybind.WithDescription(decl.Description))
	}
	if decl.DescriptionTitle != "" {
		opts = append(opts, keybind.WithDescriptionTitle(decl.DescriptionTitle))
	}
	if decl.Hidden {
		opts = append(opts, keybind.Hidden())
	}
	if decl.NotRebindable {
		opts = append(opts, keybind.NotRebindable())
	}
	return keybind.NewRaw(decl.Identifier, input.NormalizeKey(decl.Key), nil, opts...)
}
