// Package workers runs the background jobs of an application service: the
// store-and-forward retry loop, the telemetry reporter and the configuration
// watcher.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
