package server

import "context"

// Server defines the lifecycle contract of the REST listener.
type Server interface {
	// Run serves requests until ctx is cancelled, a stop signal arrives or
	// the listener fails. It shuts the server down before returning.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
