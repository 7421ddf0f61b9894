// Package config loads the host's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Ry0511/mods-base/mod"
)

// Config holds host configuration, read from modhost.toml.
type Config struct {
	// ModPaths are the directories searched for mods, in priority order.
	ModPaths []string `toml:"mod_paths"`

	// SettingsDir is where per-mod settings files live.
	SettingsDir string `toml:"settings_dir"`

	// RecoverCallbacks isolates panicking keybind callbacks so one
	// broken mod cannot abort dispatch to the rest.
	RecoverCallbacks bool `toml:"recover_callbacks"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ModPaths:         mod.DefaultModPaths(),
		SettingsDir:      defaultSettingsDir(),
		RecoverCallbacks: false,
		LogLevel:         "info",
	}
}

func defaultSettingsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "modhost", "settings")
	}
	return "settings"
}

// Load reads configuration from path. A missing file yields defaults;
// fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if len(cfg.ModPaths) == 0 {
		cfg.ModPaths = mod.DefaultModPaths()
	}
	if cfg.SettingsDir == "" {
		cfg.SettingsDir = defaultSettingsDir()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
