package utils

import "github.com/google/uuid"

// NewCorrelationID returns a UUIDv7, so ids generated by one service sort
// by creation time. A random UUID is used if the clock source fails.
func NewCorrelationID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// CorrelationIDOrNew returns id, or a new correlation id when id is blank.
func CorrelationIDOrNew(id string) string {
	if id == "" {
		return NewCorrelationID()
	}
	return id
}
