package mod

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/Ry0511/mods-base/input"
	"github.com/Ry0511/mods-base/keybind"
	modlua "github.com/Ry0511/mods-base/mod/lua"
)

// installAPI registers the `mods` module into the host's Lua state.
// Caller holds h.mu; the state is not yet shared with anything else.
func (h *Host) installAPI() {
	h.state.RegisterModule("mods", map[string]lua.LGFunction{
		"keybind":  h.luaKeybind,
		"log":      h.luaLog,
		"manifest": h.luaManifest,
	})
}

// luaKeybind implements mods.keybind(identifier, key?, callback?, opts?).
//
// opts may contain: display_name, description, description_title, hidden,
// rebindable (default true), event_filter ("pressed", "released", "repeat",
// "doubleclick", "axis", or "any" to receive every event as an argument).
//
// If the identifier was already declared in the manifest, the call attaches
// the callback to the declared bind instead of registering a second one.
func (h *Host) luaKeybind(L *lua.LState) int {
	identifier := L.CheckString(1)
	if identifier == "" {
		L.ArgError(1, "identifier cannot be empty")
		return 0
	}
	key := input.NormalizeKey(L.OptString(2, ""))

	var fn *lua.LFunction
	if L.GetTop() >= 3 && L.Get(3).Type() == lua.LTFunction {
		fn = L.Get(3).(*lua.LFunction)
	}

	filter := input.Pressed
	raw := false
	var opts []keybind.Option
	if L.GetTop() >= 4 {
		tbl := L.CheckTable(4)
		if v := tableString(tbl, "display_name"); v != "" {
			opts = append(opts, keybind.WithDisplayName(v))
		}
		if v := tableString(tbl, "description"); v != "" {
			opts = append(opts, keybind.WithDescription(v))
		}
		if v := tableString(tbl, "description_title"); v != "" {
			opts = append(opts, keybind.WithDescriptionTitle(v))
		}
		if tableBool(tbl, "hidden", false) {
			opts = append(opts, keybind.Hidden())
		}
		if !tableBool(tbl, "rebindable", true) {
			opts = append(opts, keybind.NotRebindable())
		}
		if v := tableString(tbl, "event_filter"); v != "" {
			if strings.EqualFold(v, "any") {
				raw = true
			} else {
				ev, err := input.EventFromName(v)
				if err != nil {
					L.ArgError(4, err.Error())
					return 0
				}
				filter = ev
			}
		}
	}

	var cb keybind.Callback
	if fn != nil {
		cb = h.scriptCallback(fn, filter, raw)
	}

	if existing, ok := h.mod.Keybind(identifier); ok {
		existing.Callback = cb
		return 0
	}

	kb := keybind.NewRaw(identifier, key, cb, opts...)
	if err := h.mod.RegisterKeybind(kb); err != nil {
		L.RaiseError("keybind: %v", err)
		return 0
	}
	return 0
}

// scriptCallback adapts a Lua function into a normalized keybind callback.
// Filtered callbacks are called with no arguments; raw ("any") callbacks
// receive the event name. A return of true or "block" signals Block; a
// script error is logged and treated as Continue.
func (h *Host) scriptCallback(fn *lua.LFunction, filter input.Event, raw bool) keybind.Callback {
	return func(event input.Event) keybind.Signal {
		if !raw && event != filter {
			return keybind.Continue
		}

		var args []lua.LValue
		if raw {
			args = append(args, lua.LString(event.String()))
		}

		results, err := h.state.CallValue(fn, args...)
		if err != nil {
			h.logger.Error().Err(err).Str("mod", h.mod.Name).Msg("keybind callback failed")
			return keybind.Continue
		}
		if len(results) == 0 {
			return keybind.Continue
		}

		switch v := results[0].(type) {
		case lua.LBool:
			if bool(v) {
				return keybind.Block
			}
		case lua.LString:
			if strings.EqualFold(string(v), "block") {
				return keybind.Block
			}
		}
		return keybind.Continue
	}
}

// luaLog implements mods.log(value). Strings log as the message; any other
// value is bridged to Go and logged structurally.
func (h *Host) luaLog(L *lua.LState) int {
	v := L.CheckAny(1)
	if s, ok := v.(lua.LString); ok {
		h.logger.Info().Str("mod", h.mod.Name).Msg(string(s))
		return 0
	}
	h.logger.Info().Str("mod", h.mod.Name).Interface("value", modlua.ToGo(v)).Msg("script log")
	return 0
}

// luaManifest implements mods.manifest(), exposing the mod's own metadata to
// the script as a plain table.
func (h *Host) luaManifest(L *lua.LState) int {
	L.Push(modlua.ToLua(L, map[string]any{
		"name":         h.manifest.Name,
		"version":      h.manifest.Version,
		"display_name": h.manifest.DisplayName,
		"description":  h.manifest.Description,
		"author":       h.manifest.Author,
	}))
	return 1
}

// tableString reads a string field from a Lua table.
func tableString(tbl *lua.LTable, key string) string {
	if v, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return ""
}

// tableBool reads a bool field from a Lua table.
func tableBool(tbl *lua.LTable, key string, def bool) bool {
	if v, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return def
}
