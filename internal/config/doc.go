// Package config provides configuration loading, merging, and validation
// facilities for application services.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables, EdgeX override style (WRITABLE_LOGLEVEL, ...)
//  2. Command-line flags
//  3. The service YAML file (-cd/-p/-cf)
//  4. The common YAML file (-cc)
//  5. Built-in defaults
//
// The main entry point is [GetStructuredConfig]. [Watcher] reloads the
// configuration when the service file changes.
package config
