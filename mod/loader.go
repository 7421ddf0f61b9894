package mod

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader discovers scripted mods on the filesystem.
type Loader struct {
	// Search paths for mods (checked in order; first path wins).
	paths []string

	// Discovered mods cache.
	discovered map[string]*Info
}

// Info contains discovery information about a mod.
type Info struct {
	Name     string
	Path     string
	Manifest *Manifest
	Error    error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the mod search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// NewLoader creates a new mod loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:      DefaultModPaths(),
		discovered: make(map[string]*Info),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultModPaths returns the default mod search paths.
func DefaultModPaths() []string {
	paths := make([]string, 0, 2)

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "modhost", "mods"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, "mods"))
	}

	return paths
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// Discover finds all mods in the search paths, sorted by name. Missing
// search paths are skipped, not errors.
func (l *Loader) Discover() ([]*Info, error) {
	l.discovered = make(map[string]*Info)

	for _, basePath := range l.paths {
		l.discoverInPath(basePath)
	}

	mods := make([]*Info, 0, len(l.discovered))
	for _, info := range l.discovered {
		mods = append(mods, info)
	}
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Name < mods[j].Name
	})
	return mods, nil
}

// discoverInPath finds mods in a single directory.
func (l *Loader) discoverInPath(basePath string) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			// Single-file mods (name.lua)
			if filepath.Ext(entry.Name()) == ".lua" {
				name := strings.TrimSuffix(entry.Name(), ".lua")
				l.addSingleFileMod(name, filepath.Join(basePath, entry.Name()))
			}
			continue
		}

		modPath := filepath.Join(basePath, entry.Name())
		info := l.inspectMod(entry.Name(), modPath)

		// Earlier search paths win.
		if _, exists := l.discovered[info.Name]; !exists {
			l.discovered[info.Name] = info
		}
	}
}

// addSingleFileMod records a single-file mod.
func (l *Loader) addSingleFileMod(name, luaPath string) {
	if _, exists := l.discovered[name]; exists {
		return
	}

	manifest := NewManifestMinimal(name, filepath.Dir(luaPath))
	manifest.Main = filepath.Base(luaPath)

	l.discovered[name] = &Info{
		Name:     name,
		Path:     filepath.Dir(luaPath),
		Manifest: manifest,
	}
}

// inspectMod examines a mod directory and returns its info.
func (l *Loader) inspectMod(name, path string) *Info {
	info := &Info{Name: name, Path: path}

	manifestPath := filepath.Join(path, "mod.json")
	if _, err := os.Stat(manifestPath); err == nil {
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			info.Error = fmt.Errorf("invalid manifest: %w", err)
			return info
		}
		info.Manifest = manifest
		info.Name = manifest.Name // manifest name wins over directory name
		return info
	}

	initPath := filepath.Join(path, "init.lua")
	if _, err := os.Stat(initPath); err == nil {
		info.Manifest = NewManifestMinimal(name, path)
		return info
	}

	info.Error = ErrNoEntryPoint
	return info
}

// Find searches for a mod by name across all paths.
func (l *Loader) Find(name string) (*Info, error) {
	if info, ok := l.discovered[name]; ok {
		return info, nil
	}

	for _, basePath := range l.paths {
		modPath := filepath.Join(basePath, name)
		if stat, err := os.Stat(modPath); err == nil && stat.IsDir() {
			info := l.inspectMod(name, modPath)
			if info.Error == nil {
				l.discovered[info.Name] = info
				return info, nil
			}
		}

		luaPath := filepath.Join(basePath, name+".lua")
		if _, err := os.Stat(luaPath); err == nil {
			l.addSingleFileMod(name, luaPath)
			return l.discovered[name], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrModNotFound, name)
}

// Names returns the names of all discovered mods, sorted.
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.discovered))
	for name := range l.discovered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors returns all discovered mods with discovery errors.
func (l *Loader) Errors() []*Info {
	var errored []*Info
	for _, info := range l.discovered {
		if info.Error != nil {
			errored = append(errored, info)
		}
	}
	return errored
}
