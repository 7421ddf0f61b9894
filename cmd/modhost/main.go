// Package main is a reference host for the mods-base keybind system.
//
// It stands in for the game engine: it discovers and loads Lua mods,
// applies their saved settings, and feeds terminal key presses into the
// dispatcher the way the engine's input subsystem would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Ry0511/mods-base/config"
	"github.com/Ry0511/mods-base/dispatch"
	"github.com/Ry0511/mods-base/input"
	"github.com/Ry0511/mods-base/keybind"
	"github.com/Ry0511/mods-base/mod"
	"github.com/Ry0511/mods-base/pkg/logging"
	"github.com/Ry0511/mods-base/settings"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		modsPath    string
		logLevel    string
		enableAll   bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "modhost.toml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "modhost.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&modsPath, "mods", "", "Additional mod directory (searched first)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&enableAll, "enable-all", false, "Enable every loaded mod regardless of saved settings")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("modhost %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if modsPath != "" {
		cfg.ModPaths = append([]string{modsPath}, cfg.ModPaths...)
	}

	logging.Setup(cfg.LogLevel)
	logger := logging.GetLogger("modhost")

	ctx := context.Background()
	registry := mod.NewRegistry()

	// Discover and load mods.
	loader := mod.NewLoader(mod.WithPaths(cfg.ModPaths...))
	infos, _ := loader.Discover()

	var hosts []*mod.Host
	for _, info := range infos {
		if info.Error != nil {
			logger.Warn().Err(info.Error).Str("mod", info.Name).Msg("skipping mod")
			continue
		}

		host, err := mod.NewHost(info.Manifest, mod.WithLogger(logging.GetLogger(info.Name)))
		if err != nil {
			logger.Warn().Err(err).Str("mod", info.Name).Msg("skipping mod")
			continue
		}
		if err := host.Load(ctx); err != nil {
			logger.Warn().Err(err).Str("mod", info.Name).Msg("failed to load mod")
			continue
		}

		m := host.Mod()
		m.SettingsFile = settings.FileFor(cfg.SettingsDir, m.Name)
		if err := settings.Load(m); err != nil {
			logger.Warn().Err(err).Str("mod", m.Name).Msg("failed to load settings")
		}

		if enableAll || m.Enabled() {
			if err := host.Enable(ctx); err != nil {
				logger.Warn().Err(err).Str("mod", m.Name).Msg("failed to enable mod")
				continue
			}
		}

		if err := registry.Add(m); err != nil {
			logger.Warn().Err(err).Str("mod", m.Name).Msg("failed to register mod")
			continue
		}
		hosts = append(hosts, host)
		logger.Info().Str("mod", m.String()).Int("keybinds", len(m.Keybinds())).Msg("mod loaded")
	}

	defer func() {
		for i := len(hosts) - 1; i >= 0; i-- {
			_ = settings.Save(hosts[i].Mod())
			_ = hosts[i].Unload(ctx)
		}
	}()

	// Watch the settings dir so out-of-band rebinds apply live.
	if err := os.MkdirAll(cfg.SettingsDir, 0o755); err == nil {
		watcher, err := settings.NewWatcher(cfg.SettingsDir, registry,
			settings.WithWatcherLogger(logging.GetLogger("settings")))
		if err != nil {
			logger.Warn().Err(err).Msg("settings watcher unavailable")
		} else {
			defer watcher.Close()
		}
	}

	var opts []dispatch.Option
	if cfg.RecoverCallbacks {
		opts = append(opts, dispatch.WithCallbackRecovery(func(modName, keybindID string, v any, stack []byte) {
			logger.Error().
				Str("mod", modName).
				Str("keybind", keybindID).
				Interface("panic", v).
				Msg("keybind callback panicked")
		}))
	}
	dispatcher := dispatch.New(registry, opts...)

	if err := inputLoop(dispatcher, registry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// inputLoop runs the terminal screen that stands in for the engine's input
// subsystem, feeding every key press to the dispatcher.
func inputLoop(dispatcher *dispatch.Dispatcher, registry *mod.Registry) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	lastKey, lastResult := "", ""
	for {
		draw(screen, registry, dispatcher.Stats(), lastKey, lastResult)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil
			}

			key := hostKeyName(ev)
			sig := dispatcher.HandleKeyEvent(key, input.Pressed)

			lastKey = key
			if sig == keybind.Block {
				lastResult = "blocked"
			} else {
				lastResult = "passed through"
			}
		}
	}
}

// draw renders the host status.
func draw(screen tcell.Screen, registry *mod.Registry, stats dispatch.Stats, lastKey, lastResult string) {
	screen.Clear()
	style := tcell.StyleDefault

	row := 0
	put(screen, 0, row, style.Bold(true), "modhost: press keys to dispatch, Ctrl+C to quit")
	row += 2

	for _, m := range registry.List() {
		put(screen, 0, row, style, fmt.Sprintf("%s (%d keybinds)", m.String(), len(m.Keybinds())))
		row++
		for _, kb := range m.Keybinds() {
			if kb.IsHidden {
				continue
			}
			key := kb.Key()
			if key == "" {
				key = "<unbound>"
			}
			put(screen, 2, row, style, fmt.Sprintf("%-24s %s", kb.DisplayName, key))
			row++
		}
	}
	row++

	if lastKey != "" {
		put(screen, 0, row, style, fmt.Sprintf("last: %s (%s)", lastKey, lastResult))
	}
	row++
	put(screen, 0, row, style.Dim(true),
		fmt.Sprintf("events=%d invoked=%d blocked=%d recovered=%d",
			stats.Events, stats.Invoked, stats.Blocked, stats.Recovered))

	screen.Show()
}

// put writes a string at the given position.
func put(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// specialKeys maps tcell special keys to the host engine's key names.
var specialKeys = map[tcell.Key]string{
	tcell.KeyEscape:     "Escape",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "BackSpace",
	tcell.KeyBackspace2: "BackSpace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// hostKeyName translates a terminal key event into the key name the host
// engine would report.
func hostKeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "SpaceBar"
		}
		return input.NormalizeKey(string(r))
	}
	if name, ok := specialKeys[ev.Key()]; ok {
		return name
	}
	return tcell.KeyNames[ev.Key()]
}
