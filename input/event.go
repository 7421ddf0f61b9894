// Package input defines the host engine's raw key event model: the event
// kinds the engine reports and helpers for working with its key names.
//
// Keys are identified by the plain string names the engine uses ("F",
// "Escape", "LeftShift", ...). This package does not enumerate them; it only
// normalizes common aliases so settings files and scripts can be lenient.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// Event identifies the kind of a raw key event delivered by the host engine.
type Event int

const (
	// Pressed fires when the key goes down.
	Pressed Event = iota

	// Released fires when the key comes back up.
	Released

	// Repeat fires while the key is held.
	Repeat

	// DoubleClick fires on a quick double press.
	DoubleClick

	// Axis fires continuously for analog inputs.
	Axis
)

// ErrUnknownEvent is returned when an event name cannot be resolved.
var ErrUnknownEvent = errors.New("unknown input event")

// String returns the canonical lowercase name of the event kind.
func (e Event) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Repeat:
		return "repeat"
	case DoubleClick:
		return "doubleclick"
	case Axis:
		return "axis"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// eventNames maps lowercase event names and common aliases to Event values.
var eventNames = map[string]Event{
	"pressed":     Pressed,
	"press":       Pressed,
	"released":    Released,
	"release":     Released,
	"repeat":      Repeat,
	"held":        Repeat,
	"doubleclick": DoubleClick,
	"axis":        Axis,
}

// EventFromName resolves an event kind from its name (case-insensitive).
func EventFromName(name string) (Event, error) {
	if e, ok := eventNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	return Pressed, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}
