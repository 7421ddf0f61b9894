// Package lua wraps gopher-lua for running mod scripts.
//
// Each scripted mod gets its own sandboxed state: only the safe parts of
// the Lua standard library are opened (no io, os, debug or package), and
// all execution goes through panic-recovering entry points so a broken
// script surfaces as an error instead of crashing the host.
package lua
