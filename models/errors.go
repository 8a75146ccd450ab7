package models

import "errors"

var (
	ErrUnknownValueType   = errors.New("unknown value type")
	ErrValueTypeMismatch  = errors.New("value does not match value type")
	ErrEventToXML         = errors.New("failed to convert event to XML")
	ErrInvalidEnvelope    = errors.New("invalid message envelope")
	ErrUnsupportedPayload = errors.New("unsupported payload content type")
)
