package input

import "strings"

// keyAliases maps lowercase aliases to the host engine's canonical key names.
// Only keys with widely used shorthand appear here; everything else is
// already canonical as typed.
var keyAliases = map[string]string{
	"esc":          "Escape",
	"escape":       "Escape",
	"return":       "Enter",
	"enter":        "Enter",
	"cr":           "Enter",
	"space":        "SpaceBar",
	"spacebar":     "SpaceBar",
	"tab":          "Tab",
	"bs":           "BackSpace",
	"backspace":    "BackSpace",
	"del":          "Delete",
	"delete":       "Delete",
	"ins":          "Insert",
	"insert":       "Insert",
	"home":         "Home",
	"end":          "End",
	"pgup":         "PageUp",
	"pageup":       "PageUp",
	"pgdn":         "PageDown",
	"pagedown":     "PageDown",
	"up":           "Up",
	"down":         "Down",
	"left":         "Left",
	"right":        "Right",
	"lshift":       "LeftShift",
	"leftshift":    "LeftShift",
	"rshift":       "RightShift",
	"rightshift":   "RightShift",
	"lctrl":        "LeftControl",
	"leftcontrol":  "LeftControl",
	"rctrl":        "RightControl",
	"rightcontrol": "RightControl",
	"lalt":         "LeftAlt",
	"leftalt":      "LeftAlt",
	"ralt":         "RightAlt",
	"rightalt":     "RightAlt",
	"capslock":     "CapsLock",
	"numlock":      "NumLock",
	"scrolllock":   "ScrollLock",
	"pause":        "Pause",
	"f1":           "F1",
	"f2":           "F2",
	"f3":           "F3",
	"f4":           "F4",
	"f5":           "F5",
	"f6":           "F6",
	"f7":           "F7",
	"f8":           "F8",
	"f9":           "F9",
	"f10":          "F10",
	"f11":          "F11",
	"f12":          "F12",
	"0":            "Zero",
	"1":            "One",
	"2":            "Two",
	"3":            "Three",
	"4":            "Four",
	"5":            "Five",
	"6":            "Six",
	"7":            "Seven",
	"8":            "Eight",
	"9":            "Nine",
}

// NormalizeKey maps common key-name aliases to the host engine's canonical
// names. Single letters are uppercased. Names that are not recognized pass
// through unchanged, since the engine's key set is not enumerated here.
func NormalizeKey(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := keyAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	if len(trimmed) == 1 {
		return strings.ToUpper(trimmed)
	}
	return trimmed
}
