package mod

import (
	"errors"
	"testing"

	"github.com/Ry0511/mods-base/keybind"
)

func TestRegisterKeybind(t *testing.T) {
	m := New("test-mod")

	kb := keybind.NewRaw("jump", "SpaceBar", nil)
	if err := m.RegisterKeybind(kb); err != nil {
		t.Fatalf("RegisterKeybind() error = %v", err)
	}

	got, ok := m.Keybind("jump")
	if !ok {
		t.Fatal("Keybind(jump) not found after registration")
	}
	if got != kb {
		t.Error("Keybind(jump) returned a different keybind")
	}
}

func TestRegisterKeybindNil(t *testing.T) {
	m := New("test-mod")
	if err := m.RegisterKeybind(nil); !errors.Is(err, ErrNilKeybind) {
		t.Errorf("RegisterKeybind(nil) error = %v, want ErrNilKeybind", err)
	}
}

func TestRegisterKeybindDuplicate(t *testing.T) {
	m := New("test-mod")

	if err := m.RegisterKeybind(keybind.NewRaw("jump", "SpaceBar", nil)); err != nil {
		t.Fatalf("first RegisterKeybind() error = %v", err)
	}

	err := m.RegisterKeybind(keybind.NewRaw("jump", "J", nil))
	if !errors.Is(err, ErrDuplicateKeybind) {
		t.Errorf("duplicate RegisterKeybind() error = %v, want ErrDuplicateKeybind", err)
	}
}

func TestKeybindsOrder(t *testing.T) {
	m := New("test-mod")

	ids := []string{"third", "first", "second"}
	for _, id := range ids {
		if err := m.RegisterKeybind(keybind.NewRaw(id, "F1", nil)); err != nil {
			t.Fatalf("RegisterKeybind(%s) error = %v", id, err)
		}
	}

	got := m.Keybinds()
	if len(got) != len(ids) {
		t.Fatalf("Keybinds() len = %d, want %d", len(got), len(ids))
	}
	for i, kb := range got {
		if kb.Identifier != ids[i] {
			t.Errorf("Keybinds()[%d] = %s, want %s", i, kb.Identifier, ids[i])
		}
	}
}

func TestKeybindsReturnsCopy(t *testing.T) {
	m := New("test-mod")
	if err := m.RegisterKeybind(keybind.NewRaw("jump", "SpaceBar", nil)); err != nil {
		t.Fatalf("RegisterKeybind() error = %v", err)
	}

	list := m.Keybinds()
	list[0] = nil

	if got := m.Keybinds(); got[0] == nil {
		t.Error("mutating the returned slice affected the mod's keybinds")
	}
}

func TestClearKeybinds(t *testing.T) {
	m := New("test-mod")
	if err := m.RegisterKeybind(keybind.NewRaw("jump", "SpaceBar", nil)); err != nil {
		t.Fatalf("RegisterKeybind() error = %v", err)
	}

	m.ClearKeybinds()

	if got := m.Keybinds(); len(got) != 0 {
		t.Errorf("Keybinds() after clear len = %d, want 0", len(got))
	}
	if _, ok := m.Keybind("jump"); ok {
		t.Error("Keybind(jump) still found after clear")
	}

	// Re-registration under a cleared identifier must work.
	if err := m.RegisterKeybind(keybind.NewRaw("jump", "J", nil)); err != nil {
		t.Errorf("RegisterKeybind() after clear error = %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	m := New("test-mod")
	if m.Enabled() {
		t.Error("new mod should start disabled")
	}

	m.SetEnabled(true)
	if !m.Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}

	m.SetEnabled(false)
	if m.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestModString(t *testing.T) {
	m := New("photo-mode")
	if got := m.String(); got != "photo-mode" {
		t.Errorf("String() = %q, want %q", got, "photo-mode")
	}

	m.Version = "1.2.0"
	if got := m.String(); got != "photo-mode v1.2.0" {
		t.Errorf("String() = %q, want %q", got, "photo-mode v1.2.0")
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(New("alpha")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get(alpha) not found after Add")
	}
}

func TestRegistryAddNil(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(nil); !errors.Is(err, ErrNilMod) {
		t.Errorf("Add(nil) error = %v, want ErrNilMod", err)
	}
}

func TestRegistryAddDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(New("alpha")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := r.Add(New("alpha"))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("duplicate Add() error = %v, want ErrAlreadyRegistered", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() after duplicate Add = %d, want 1", r.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := r.Add(New(name)); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	if err := r.Remove("beta"); err != nil {
		t.Fatalf("Remove(beta) error = %v", err)
	}

	got := r.List()
	want := []string{"alpha", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Name != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, m.Name, want[i])
		}
	}
}

func TestRegistryRemoveMissing(t *testing.T) {
	r := NewRegistry()
	if err := r.Remove("ghost"); !errors.Is(err, ErrModNotFound) {
		t.Errorf("Remove(ghost) error = %v, want ErrModNotFound", err)
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()

	// Registration order, not alphabetical order.
	names := []string{"zulu", "alpha", "mike"}
	for _, name := range names {
		if err := r.Add(New(name)); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	got := r.List()
	for i, m := range got {
		if m.Name != names[i] {
			t.Errorf("List()[%d] = %s, want %s", i, m.Name, names[i])
		}
	}
}

func TestRegistrySubscribe(t *testing.T) {
	r := NewRegistry()

	var events []Event
	token := r.Subscribe(func(e Event) {
		events = append(events, e)
	})
	if token == "" {
		t.Fatal("Subscribe() returned empty token")
	}

	if err := r.Add(New("alpha")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := r.Remove("alpha"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventModAdded || events[0].Mod != "alpha" {
		t.Errorf("events[0] = %+v, want added alpha", events[0])
	}
	if events[1].Type != EventModRemoved || events[1].Mod != "alpha" {
		t.Errorf("events[1] = %+v, want removed alpha", events[1])
	}
}

func TestRegistryUnsubscribe(t *testing.T) {
	r := NewRegistry()

	calls := 0
	token := r.Subscribe(func(Event) { calls++ })
	r.Unsubscribe(token)

	if err := r.Add(New("alpha")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("unsubscribed handler called %d times", calls)
	}
}

func TestRegistrySubscribeNil(t *testing.T) {
	r := NewRegistry()
	if token := r.Subscribe(nil); token != "" {
		t.Errorf("Subscribe(nil) = %q, want empty token", token)
	}
}

func TestRegistryPanickingHandler(t *testing.T) {
	r := NewRegistry()

	r.Subscribe(func(Event) { panic("broken subscriber") })

	called := false
	r.Subscribe(func(Event) { called = true })

	if err := r.Add(New("alpha")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !called {
		t.Error("handler after panicking handler never ran")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventModAdded, "added"},
		{EventModRemoved, "removed"},
		{EventType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHostStateString(t *testing.T) {
	tests := []struct {
		state HostState
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoaded, "loaded"},
		{StateEnabled, "enabled"},
		{StateError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
