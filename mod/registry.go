package mod

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry is the ordered collection of loaded mods. Registration order is
// preserved and drives dispatch order across mods. It is constructed at
// startup and handed to whoever needs the mod list; nothing in this module
// reads a process-wide registry.
type Registry struct {
	mu       sync.RWMutex
	mods     map[string]*Mod
	order    []string
	handlers map[string]EventHandler
}

// EventType is the kind of registry event.
type EventType int

const (
	// EventModAdded is emitted when a mod is registered.
	EventModAdded EventType = iota
	// EventModRemoved is emitted when a mod is removed.
	EventModRemoved
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventModAdded:
		return "added"
	case EventModRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes a change to the registry.
type Event struct {
	Type EventType
	Mod  string
}

// EventHandler receives registry events. Handlers are invoked outside the
// registry's lock and must not block; panics are recovered.
type EventHandler func(Event)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mods:     make(map[string]*Mod),
		handlers: make(map[string]EventHandler),
	}
}

// Add registers a mod. Names must be unique.
func (r *Registry) Add(m *Mod) error {
	if m == nil {
		return ErrNilMod
	}

	r.mu.Lock()
	if _, exists := r.mods[m.Name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.Name)
	}
	r.mods[m.Name] = m
	r.order = append(r.order, m.Name)
	r.mu.Unlock()

	r.emit(Event{Type: EventModAdded, Mod: m.Name})
	return nil
}

// Remove unregisters a mod by name. Relative order of the remaining mods is
// preserved.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	if _, exists := r.mods[name]; !exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrModNotFound, name)
	}
	delete(r.mods, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.emit(Event{Type: EventModRemoved, Mod: name})
	return nil
}

// Get returns a mod by name.
func (r *Registry) Get(name string) (*Mod, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mods[name]
	return m, ok
}

// List returns all mods in registration order.
func (r *Registry) List() []*Mod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Mod, 0, len(r.order))
	for _, name := range r.order {
		if m, ok := r.mods[name]; ok {
			result = append(result, m)
		}
	}
	return result
}

// Len returns the number of registered mods.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mods)
}

// Subscribe adds an event handler and returns a token for Unsubscribe.
func (r *Registry) Subscribe(handler EventHandler) string {
	if handler == nil {
		return ""
	}

	token := uuid.New().String()
	r.mu.Lock()
	r.handlers[token] = handler
	r.mu.Unlock()
	return token
}

// Unsubscribe removes the handler registered under token.
func (r *Registry) Unsubscribe(token string) {
	r.mu.Lock()
	delete(r.handlers, token)
	r.mu.Unlock()
}

// emit calls every handler outside the lock, recovering panics so one
// misbehaving subscriber cannot take down the registry's caller.
func (r *Registry) emit(event Event) {
	r.mu.RLock()
	handlers := make([]EventHandler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				_ = recover()
			}()
			handler(event)
		}()
	}
}
