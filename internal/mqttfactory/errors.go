package mqttfactory

import "errors"

var (
	ErrUnknownAuthMode   = errors.New("unknown auth mode")
	ErrMissingSecretData = errors.New("missing secret data")
	ErrInvalidTLSData    = errors.New("invalid TLS data")
	ErrNoSecretProvider  = errors.New("secret provider is not configured")
)
