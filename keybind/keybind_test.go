package keybind

import (
	"errors"
	"testing"

	"github.com/Ry0511/mods-base/input"
)

func TestNewDefaults(t *testing.T) {
	kb := New("open_menu", "F7", func() Signal { return Continue })

	if kb.DisplayName != "open_menu" {
		t.Errorf("DisplayName = %q, want identifier fallback", kb.DisplayName)
	}
	if kb.DescriptionTitle != "open_menu" {
		t.Errorf("DescriptionTitle = %q, want display name fallback", kb.DescriptionTitle)
	}
	if !kb.IsRebindable {
		t.Error("IsRebindable should default to true")
	}
	if kb.IsHidden {
		t.Error("IsHidden should default to false")
	}
	if kb.DefaultKey() != "F7" {
		t.Errorf("DefaultKey() = %q, want %q", kb.DefaultKey(), "F7")
	}
}

func TestNewOverrides(t *testing.T) {
	t.Run("display name cascades to title", func(t *testing.T) {
		kb := New("open_menu", "F7", nil, WithDisplayName("Open Menu"))
		if kb.DisplayName != "Open Menu" {
			t.Errorf("DisplayName = %q", kb.DisplayName)
		}
		if kb.DescriptionTitle != "Open Menu" {
			t.Errorf("DescriptionTitle = %q, want resolved display name", kb.DescriptionTitle)
		}
	})

	t.Run("independent overrides", func(t *testing.T) {
		kb := New("open_menu", "F7", nil,
			WithDisplayName("Open Menu"),
			WithDescription("Opens the mod menu."),
			WithDescriptionTitle("Menu"),
			Hidden(),
			NotRebindable(),
		)
		if kb.DisplayName != "Open Menu" || kb.DescriptionTitle != "Menu" {
			t.Errorf("got DisplayName=%q DescriptionTitle=%q", kb.DisplayName, kb.DescriptionTitle)
		}
		if kb.Description != "Opens the mod menu." {
			t.Errorf("Description = %q", kb.Description)
		}
		if !kb.IsHidden {
			t.Error("Hidden() not applied")
		}
		if kb.IsRebindable {
			t.Error("NotRebindable() not applied")
		}
	})
}

func TestNewEmptyIdentifierPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New with empty identifier should panic")
		}
	}()
	New("", "F7", nil)
}

func TestFilteredCallback(t *testing.T) {
	calls := 0
	kb := New("jump", "SpaceBar", func() Signal {
		calls++
		return Block
	})

	if got := kb.Callback(input.Released); got != Continue {
		t.Errorf("non-matching event returned %v, want Continue", got)
	}
	if got := kb.Callback(input.Repeat); got != Continue {
		t.Errorf("non-matching event returned %v, want Continue", got)
	}
	if calls != 0 {
		t.Fatalf("user function invoked %d times for non-matching events", calls)
	}

	if got := kb.Callback(input.Pressed); got != Block {
		t.Errorf("matching event returned %v, want Block", got)
	}
	if calls != 1 {
		t.Errorf("user function invoked %d times, want 1", calls)
	}
}

func TestWithEventFilter(t *testing.T) {
	calls := 0
	kb := New("charge", "F", func() Signal {
		calls++
		return Continue
	}, WithEventFilter(input.Released))

	kb.Callback(input.Pressed)
	if calls != 0 {
		t.Error("callback fired on Pressed despite Released filter")
	}
	kb.Callback(input.Released)
	if calls != 1 {
		t.Errorf("callback fired %d times on Released, want 1", calls)
	}
}

func TestRawCallbackReceivesEventVerbatim(t *testing.T) {
	var seen []input.Event
	kb := NewRaw("trace", "T", func(ev input.Event) Signal {
		seen = append(seen, ev)
		return Continue
	})

	events := []input.Event{input.Pressed, input.Released, input.Repeat, input.Axis}
	for _, ev := range events {
		kb.Callback(ev)
	}

	if len(seen) != len(events) {
		t.Fatalf("raw callback invoked %d times, want %d", len(seen), len(events))
	}
	for i, ev := range events {
		if seen[i] != ev {
			t.Errorf("invocation %d saw %v, want %v", i, seen[i], ev)
		}
	}
}

func TestDeclareForms(t *testing.T) {
	fired := false
	kb := Declare("photo_mode", "F5", WithDescription("Toggle photo mode."))(func() Signal {
		fired = true
		return Block
	})

	if kb.Identifier != "photo_mode" || kb.Key() != "F5" {
		t.Fatalf("unexpected descriptor: %+v", kb)
	}
	if kb.Callback(input.Pressed) != Block || !fired {
		t.Error("deferred callback not wired through")
	}

	raw := DeclareRaw("scroll", "MouseWheelUp")(func(ev input.Event) Signal {
		if ev == input.Axis {
			return Block
		}
		return Continue
	})
	if raw.Callback(input.Axis) != Block {
		t.Error("DeclareRaw callback not wired through")
	}
}

func TestDefaultKeyImmutable(t *testing.T) {
	kb := New("dash", "LeftShift", nil)

	if err := kb.Rebind("Q"); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if kb.Key() != "Q" {
		t.Errorf("Key = %q after rebind, want %q", kb.Key(), "Q")
	}
	if kb.DefaultKey() != "LeftShift" {
		t.Errorf("DefaultKey() = %q after rebind, want original", kb.DefaultKey())
	}

	if err := kb.Unbind(); err != nil {
		t.Fatalf("Unbind: %v", err)
	}
	if kb.IsBound() {
		t.Error("IsBound() = true after Unbind")
	}
	if kb.DefaultKey() != "LeftShift" {
		t.Errorf("DefaultKey() = %q after unbind, want original", kb.DefaultKey())
	}

	if err := kb.ResetToDefault(); err != nil {
		t.Fatalf("ResetToDefault: %v", err)
	}
	if kb.Key() != "LeftShift" {
		t.Errorf("Key = %q after reset, want %q", kb.Key(), "LeftShift")
	}
}

func TestRebindNotRebindable(t *testing.T) {
	kb := New("locked", "L", nil, NotRebindable())

	if err := kb.Rebind("K"); !errors.Is(err, ErrNotRebindable) {
		t.Errorf("Rebind error = %v, want ErrNotRebindable", err)
	}
	if kb.Key() != "L" {
		t.Errorf("Key = %q, rebind should not have applied", kb.Key())
	}
}

func TestSignalString(t *testing.T) {
	if Continue.String() != "continue" || Block.String() != "block" {
		t.Errorf("Signal strings: %q, %q", Continue.String(), Block.String())
	}
}
