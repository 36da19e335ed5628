package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/netatlas/netatlas/internal/logging"
)

// ReloadCallback is invoked with the freshly loaded configuration whenever
// the watched file changes and parses cleanly. Callback errors are logged
// and the watcher keeps the previous configuration in effect.
type ReloadCallback func(cfg *Config) error

// Watcher watches a config file and triggers debounced reloads, so default
// policy changes (zone label, subnet exposure assumption) can be picked up
// without restarting the server. Editors often write a file several times in
// quick succession; those events are coalesced into a single reload.
type Watcher struct {
	path     string
	debounce time.Duration
	callback ReloadCallback
	logger   *logging.Logger

	cancel  context.CancelFunc
	stopped chan struct{}

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, callback ReloadCallback) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config watcher path cannot be empty")
	}
	if callback == nil {
		return nil, fmt.Errorf("config watcher callback cannot be nil")
	}
	return &Watcher{
		path:     path,
		debounce: 500 * time.Millisecond,
		callback: callback,
		logger:   logging.GetLogger("config.watcher"),
		stopped:  make(chan struct{}),
	}, nil
}

// Name implements the lifecycle.Component interface.
func (w *Watcher) Name() string {
	return "Config Watcher"
}

// Start begins watching the config file. It watches the parent directory
// rather than the file itself so atomic-rename saves keep working.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go w.watchLoop(watchCtx, fsw)

	w.logger.Info("Watching config file %s", w.path)
	return nil
}

// Stop terminates the watch loop.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.stopped)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watch error: %v", err)
		}
	}
}

// scheduleReload coalesces bursts of file events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("Config reload failed, keeping previous config: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Error("Reloaded config is invalid, keeping previous config: %v", err)
		return
	}
	if err := w.callback(cfg); err != nil {
		w.logger.Error("Config reload callback failed: %v", err)
		return
	}
	w.logger.Info("Config reloaded from %s", w.path)
}
