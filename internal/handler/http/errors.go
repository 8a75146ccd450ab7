// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the REST layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrSigningKey is returned when the JWT signing key cannot be read from
	// the secret provider.
	ErrSigningKey = errors.New("JWT signing key is not available")

	ErrInvalidJSON          = errors.New("invalid JSON was passed")
	ErrInvalidSecretRequest = errors.New("invalid secret request")
	ErrNoSecretProvider     = errors.New("secret provider is not configured")
	ErrEmptyRoute           = errors.New("route is empty")
	ErrNilRouteHandler      = errors.New("route handler is nil")
	ErrInvalidRouteMethod   = errors.New("invalid route method")
)
