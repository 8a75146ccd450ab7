// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the contracts of objects entering the service:
// stored retry objects before they reach a store and secret requests
// received by the REST API.
//
// Each validator accepts an optional list of field names. When given, only
// those fields are checked.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
