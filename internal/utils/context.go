// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
)

// contextKey is a private type for context keys defined in this package,
// so they never collide with keys from other packages.
type contextKey string

// String returns the name of the key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// CorrelationIDCtxKey holds the correlation id of the message or request.
	CorrelationIDCtxKey = contextKey("correlationID")

	// ContentTypeCtxKey holds the content type of the data being published.
	ContentTypeCtxKey = contextKey("contentType")
)

// WithCorrelationID returns a copy of ctx that carries correlationID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDCtxKey, correlationID)
}

// CorrelationIDFromContext returns the correlation id stored in ctx, or an
// empty string.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(CorrelationIDCtxKey).(string)
	return id
}

func WithContentType(ctx context.Context, contentType string) context.Context {
	return context.WithValue(ctx, ContentTypeCtxKey, contentType)
}

func ContentTypeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	contentType, _ := ctx.Value(ContentTypeCtxKey).(string)
	return contentType
}
