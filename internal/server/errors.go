// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	ErrNoHandler       = errors.New("no HTTP handler is given")
	ErrTLSCertificate  = errors.New("cannot load TLS certificate")
	ErrNoSecrets       = errors.New("secret provider is not configured")
	ErrServerListening = errors.New("HTTP server stopped listening")
)
