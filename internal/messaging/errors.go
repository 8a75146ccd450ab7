package messaging

import "errors"

var (
	ErrUnsupportedBusType = errors.New("unsupported message bus type")
	ErrNotConnected       = errors.New("message bus client is not connected")
	ErrTimeout            = errors.New("message bus operation timed out")
	ErrEmptyHostInfo      = errors.New("message bus host information is empty")
	ErrConnect            = errors.New("unable to connect")
)
