// Package server runs the REST listener of an application service.
//
// It serves plain HTTP or HTTPS with the certificate read from the secret
// provider, and shuts down gracefully on SIGINT, SIGTERM, SIGQUIT or when
// the run context is cancelled.
package server
