package settings

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/Ry0511/mods-base/mod"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("settings watcher is closed")

// Watcher re-applies a mod's settings file when it changes on disk, so
// rebinds made out of band take effect without restarting the host.
//
// Re-applying only updates the Mod: a changed enabled flag toggles the flag
// but does not run a scripted mod's on_enable/on_disable hooks, which belong
// to the owning Host. Hosts that need to react subscribe to their own state;
// the watcher stays a plain settings re-loader.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	registry *mod.Registry
	logger   zerolog.Logger

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for watch errors.
func WithWatcherLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher watches dir for settings changes and applies them to mods in
// the registry. The directory must exist.
func NewWatcher(dir string, registry *mod.Registry, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		registry: registry,
		logger:   zerolog.Nop(),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("settings watch error")
		}
	}
}

// handleEvent reloads the settings of the mod whose file changed.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	base := filepath.Base(event.Name)
	if filepath.Ext(base) != ".json" {
		return
	}
	name := strings.TrimSuffix(base, ".json")

	m, ok := w.registry.Get(name)
	if !ok {
		return
	}
	if err := Load(m); err != nil {
		w.logger.Warn().Err(err).Str("mod", name).Msg("failed to reload settings")
		return
	}
	w.logger.Debug().Str("mod", name).Msg("settings reloaded")
}
