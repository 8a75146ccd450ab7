package workers

import "context"

// ConfigWatcher is the part of config.Watcher the worker drives.
type ConfigWatcher interface {
	Start(ctx context.Context)
	Stop()
}

// Watcher keeps a configuration watcher running for the life of ctx.
type Watcher struct {
	watcher ConfigWatcher
}

func NewWatcher(watcher ConfigWatcher) *Watcher {
	return &Watcher{watcher: watcher}
}

func (w *Watcher) Run(ctx context.Context) {
	w.watcher.Start(ctx)
	<-ctx.Done()
	w.watcher.Stop()
}
