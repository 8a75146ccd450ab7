package config

import "errors"

// Errors returned while loading and validating the configuration.
var (
	// ErrInvalidFlags indicates command-line flags that could not be parsed.
	ErrInvalidFlags = errors.New("invalid command-line flags")
	// ErrReadConfigFile indicates a configuration file that could not be
	// read or decoded.
	ErrReadConfigFile = errors.New("failed to read configuration file")
	// ErrInvalidConfig wraps every validation failure of the merged
	// configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrSectionNotFound is returned when a custom configuration section is
	// absent.
	ErrSectionNotFound = errors.New("configuration section not found")
	// ErrSecureSecretStore is returned when the secure secret store is
	// requested.
	ErrSecureSecretStore = errors.New("secure secret store is not supported, set EDGEX_SECURITY_SECRET_STORE=false")
)
