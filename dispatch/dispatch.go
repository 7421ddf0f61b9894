// Package dispatch routes raw key events from the host engine to every
// matching keybind across all registered mods.
//
// The host engine registers Dispatcher.HandleKeyEvent as its input callback
// and invokes it once per raw key event on its own event-processing thread.
// Delivery is serialized by the host; the dispatcher adds no locking beyond
// the registry's read lock.
package dispatch

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/Ry0511/mods-base/input"
	"github.com/Ry0511/mods-base/keybind"
	"github.com/Ry0511/mods-base/mod"
)

// PanicHandler is called when callback recovery is enabled and a keybind
// callback panics. It receives the owning mod's name, the keybind
// identifier, the panic value and the stack trace.
type PanicHandler func(modName, keybindID string, v any, stack []byte)

// Dispatcher aggregates all mods' reactions to a raw key event.
type Dispatcher struct {
	registry *mod.Registry

	// Callback failure policy. With recovery off (the default), a
	// panicking callback propagates to the host engine's event loop and
	// aborts the remainder of the pass.
	recoverPanics bool
	panicHandler  PanicHandler

	// Stats
	events    atomic.Uint64
	invoked   atomic.Uint64
	blocked   atomic.Uint64
	recovered atomic.Uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCallbackRecovery makes the dispatcher recover panics from individual
// keybind callbacks so one misbehaving mod cannot abort dispatch to the
// rest. A recovered callback contributes no block decision. handler may be
// nil.
func WithCallbackRecovery(handler PanicHandler) Option {
	return func(d *Dispatcher) {
		d.recoverPanics = true
		d.panicHandler = handler
	}
}

// New creates a dispatcher over the given registry.
func New(registry *mod.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleKeyEvent is the single entry point the host engine calls on every
// raw key event.
//
// Mods are visited in registration order and each mod's keybinds in list
// order. Every bind whose key equals the firing key and whose callback is
// non-nil runs exactly once. A Block result is remembered but never
// short-circuits the pass: later binds on the same key still run, so every
// mod gets a chance to react even when an earlier one wants the input
// suppressed. Returns Block if any callback signalled it.
func (d *Dispatcher) HandleKeyEvent(key string, event input.Event) keybind.Signal {
	d.events.Add(1)

	shouldBlock := false
	for _, m := range d.registry.List() {
		for _, kb := range m.Keybinds() {
			if kb.Callback == nil {
				continue
			}
			if bound := kb.Key(); bound == "" || bound != key {
				continue
			}

			if d.invoke(m, kb, event) == keybind.Block {
				shouldBlock = true
			}
		}
	}

	if shouldBlock {
		d.blocked.Add(1)
		return keybind.Block
	}
	return keybind.Continue
}

// invoke runs a single callback, recovering a panic when the dispatcher is
// configured to.
func (d *Dispatcher) invoke(m *mod.Mod, kb *keybind.Keybind, event input.Event) (sig keybind.Signal) {
	d.invoked.Add(1)

	if d.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				d.recovered.Add(1)
				sig = keybind.Continue
				if d.panicHandler != nil {
					d.panicHandler(m.Name, kb.Identifier, r, debug.Stack())
				}
			}
		}()
	}

	return kb.Callback(event)
}

// Stats contains dispatch statistics.
type Stats struct {
	// Events is the number of HandleKeyEvent calls.
	Events uint64

	// Invoked is the number of keybind callbacks run.
	Invoked uint64

	// Blocked is the number of events that resulted in Block.
	Blocked uint64

	// Recovered is the number of callback panics recovered.
	Recovered uint64
}

// Stats returns dispatch statistics. Values are read without a lock and may
// be slightly inconsistent while events are in flight.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Events:    d.events.Load(),
		Invoked:   d.invoked.Load(),
		Blocked:   d.blocked.Load(),
		Recovered: d.recovered.Load(),
	}
}

// ResetStats resets all statistics to zero.
func (d *Dispatcher) ResetStats() {
	d.events.Store(0)
	d.invoked.Store(0)
	d.blocked.Store(0)
	d.recovered.Store(0)
}
