package keybind

import "fmt"

// Signal is a callback's verdict on a dispatched key event.
type Signal int

const (
	// Continue lets the input pass through to the game. It is the zero
	// value, so a callback that has no opinion can return it implicitly.
	Continue Signal = iota

	// Block suppresses the input from reaching the game.
	Block
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}
