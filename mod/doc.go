// Package mod defines the unit of gameplay-modifying code the dispatcher
// routes events to, and the registry holding every loaded mod.
//
// A Mod owns an ordered list of keybinds. Mods written in Go construct one
// directly and register keybinds on it; Lua-scripted mods are discovered on
// disk by a Loader and run inside a Host, which attaches script-registered
// keybinds to its Mod. The Registry is the single ordered collection a
// Dispatcher iterates; there is no ambient global mod list.
package mod
