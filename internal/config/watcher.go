package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// reloadDelay collapses the burst of events editors produce on save.
const reloadDelay = 250 * time.Millisecond

// Watcher reloads the configuration whenever the service configuration
// file changes and hands the new configuration to its listeners.
type Watcher struct {
	path   string
	loader *Loader
	log    *logger.Logger

	mu        sync.Mutex
	listeners []func(*StructuredConfig)
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWatcher creates a Watcher for the service file of cfg. The watcher is
// idle until Start is called.
func NewWatcher(cfg *StructuredConfig, loader *Loader, log *logger.Logger) *Watcher {
	return &Watcher{
		path:   cfg.Sources.ServiceFilePath(),
		loader: loader,
		log:    log,
	}
}

// OnChange registers fn to receive every successfully reloaded
// configuration.
func (w *Watcher) OnChange(fn func(*StructuredConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Start watches the directory of the service file, since editors often
// replace the file instead of writing to it.
func (w *Watcher) Start(ctx context.Context) {
	w.Stop()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Err(err).Str("func", "*config.Watcher.Start").Msg("failed to create file watcher")
		return
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		w.log.Err(err).Str("func", "*config.Watcher.Start").Str("path", w.path).Msg("failed to watch configuration directory")
		_ = fsw.Close()
		return
	}

	w.mu.Lock()
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		defer fsw.Close()

		var reload <-chan time.Time
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					reload = time.After(reloadDelay)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.log.Err(err).Str("func", "*config.Watcher.Start").Msg("file watcher error")
			case <-reload:
				reload = nil
				w.reload()
			}
		}
	}()

	w.log.Info().Str("path", w.path).Msg("watching configuration for changes")
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		w.log.Err(err).Str("func", "*config.Watcher.reload").Msg("configuration change ignored")
		return
	}

	w.mu.Lock()
	listeners := append([]func(*StructuredConfig){}, w.listeners...)
	w.mu.Unlock()

	w.log.Info().Str("path", w.path).Msg("configuration reloaded")
	for _, fn := range listeners {
		fn(cfg)
	}
}

// Stop ends the watch and waits for the goroutine to exit. Safe to call
// when the watcher is not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
