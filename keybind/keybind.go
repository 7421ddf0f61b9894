// Package keybind defines the descriptor for a single mod keybind and the
// constructors mods use to declare one.
//
// A keybind ties a stable identifier to a physical key and a callback. The
// callback is normalized to take the triggering input event and return a
// Signal; constructors adapt simpler callback shapes (no-argument, fired
// only on a chosen event kind) into that form.
package keybind

import (
	"errors"
	"sync"

	"github.com/Ry0511/mods-base/input"
)

// Callback is the normalized form of a keybind callback. It receives the
// raw event that fired and returns a Signal deciding whether the input is
// passed through to the game.
type Callback func(input.Event) Signal

// ErrNotRebindable is returned when rebinding a keybind that forbids it.
var ErrNotRebindable = errors.New("keybind is not rebindable")

// Keybind describes one logical keybind owned by a mod.
//
// The currently bound physical key is read via Key and mutated via Rebind,
// Unbind and ResetToDefault; those are safe to call while a dispatch pass
// reads the bind from another goroutine (settings re-applies arrive from a
// watcher goroutine). The key the bind was registered with is preserved and
// available via DefaultKey.
type Keybind struct {
	// Identifier is the stable identifier, unique within a mod.
	Identifier string

	// Callback runs on matching events. A nil callback never dispatches.
	// It is set during mod load, before the bind is visible to dispatch.
	Callback Callback

	// DisplayName is the name shown in any options UI. Defaults to the
	// identifier.
	DisplayName string

	// Description is a short description of the bind.
	Description string

	// DescriptionTitle is the heading shown above the description.
	// Defaults to the resolved display name.
	DescriptionTitle string

	// IsHidden suppresses the bind from any options UI.
	IsHidden bool

	// IsRebindable reports whether user-driven rebinding is permitted.
	IsRebindable bool

	mu         sync.RWMutex
	key        string
	defaultKey string
}

// settings collects constructor configuration before the descriptor is
// built, so defaults resolve in one place.
type settings struct {
	displayName      string
	description      string
	descriptionTitle string
	hidden           bool
	notRebindable    bool
	filter           input.Event
}

// Option configures keybind construction.
type Option func(*settings)

// WithDisplayName overrides the display name (default: the identifier).
func WithDisplayName(name string) Option {
	return func(s *settings) { s.displayName = name }
}

// WithDescription sets the bind's description.
func WithDescription(desc string) Option {
	return func(s *settings) { s.description = desc }
}

// WithDescriptionTitle overrides the description title (default: the
// resolved display name).
func WithDescriptionTitle(title string) Option {
	return func(s *settings) { s.descriptionTitle = title }
}

// WithEventFilter changes which event kind fires a no-argument callback.
// Only New and Declare consult the filter; raw callbacks see every event.
func WithEventFilter(event input.Event) Option {
	return func(s *settings) { s.filter = event }
}

// Hidden hides the bind from any options UI.
func Hidden() Option {
	return func(s *settings) { s.hidden = true }
}

// NotRebindable forbids user-driven rebinding.
func NotRebindable() Option {
	return func(s *settings) { s.notRebindable = true }
}

// New constructs a keybind whose callback fires only for one event kind
// (input.Pressed unless changed via WithEventFilter). For all other event
// kinds the normalized callback returns Continue without invoking fn.
//
// An empty identifier panics: it is a registration bug in the calling mod
// and there is no caller that could meaningfully handle it.
func New(identifier, key string, fn func() Signal, opts ...Option) *Keybind {
	s := apply(opts)
	return build(identifier, key, filtered(fn, s.filter), s)
}

// NewRaw constructs a keybind whose callback receives every event for its
// key verbatim and decides for itself which to act on.
func NewRaw(identifier, key string, fn Callback, opts ...Option) *Keybind {
	return build(identifier, key, fn, apply(opts))
}

// Declare begins construction without a callback and returns a function
// that finishes it, with the same filtering semantics as New. It supports
// declaring binds up front and attaching behavior later:
//
//	bind := keybind.Declare("photo_mode", "F5")(togglePhotoMode)
func Declare(identifier, key string, opts ...Option) func(func() Signal) *Keybind {
	s := apply(opts)
	return func(fn func() Signal) *Keybind {
		return build(identifier, key, filtered(fn, s.filter), s)
	}
}

// DeclareRaw is Declare for raw event callbacks.
func DeclareRaw(identifier, key string, opts ...Option) func(Callback) *Keybind {
	s := apply(opts)
	return func(fn Callback) *Keybind {
		return build(identifier, key, fn, s)
	}
}

func apply(opts []Option) settings {
	s := settings{filter: input.Pressed}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// filtered wraps a no-argument callback so it fires only on the given event
// kind, returning Continue for everything else.
func filtered(fn func() Signal, filter input.Event) Callback {
	if fn == nil {
		return nil
	}
	return func(event input.Event) Signal {
		if event != filter {
			return Continue
		}
		return fn()
	}
}

func build(identifier, key string, cb Callback, s settings) *Keybind {
	if identifier == "" {
		panic("keybind: empty identifier")
	}

	displayName := s.displayName
	if displayName == "" {
		displayName = identifier
	}
	descriptionTitle := s.descriptionTitle
	if descriptionTitle == "" {
		descriptionTitle = displayName
	}

	return &Keybind{
		Identifier:       identifier,
		key:              key,
		Callback:         cb,
		DisplayName:      displayName,
		Description:      s.description,
		DescriptionTitle: descriptionTitle,
		IsHidden:         s.hidden,
		IsRebindable:     !s.notRebindable,
		defaultKey:       key,
	}
}

// Key returns the currently bound physical key. Empty means unbound.
func (k *Keybind) Key() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key
}

// DefaultKey returns the key the bind was registered with. It never changes,
// even as the bound key is rebound.
func (k *Keybind) DefaultKey() string {
	return k.defaultKey
}

// IsBound reports whether the bind currently has a key.
func (k *Keybind) IsBound() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key != ""
}

// Rebind updates the bound key in place. Rebinding a bind constructed with
// NotRebindable fails with ErrNotRebindable.
func (k *Keybind) Rebind(key string) error {
	if !k.IsRebindable {
		return ErrNotRebindable
	}
	k.mu.Lock()
	k.key = key
	k.mu.Unlock()
	return nil
}

// Unbind removes the current key so the bind no longer matches any event.
func (k *Keybind) Unbind() error {
	return k.Rebind("")
}

// ResetToDefault restores the key the bind was registered with.
func (k *Keybind) ResetToDefault() error {
	return k.Rebind(k.defaultKey)
}
