package appfunction

import "errors"

var (
	ErrMissingContextValue = errors.New("context value not found")
	ErrNoMessageBus        = errors.New("message bus client is not configured")
	ErrClientNotConfigured = errors.New("client is not configured")
	ErrPublish             = errors.New("failed to publish data")
)
