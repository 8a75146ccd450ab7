// Package http implements the REST API of an application service.
//
// It exposes the ping, version, config, secret and metrics routes, the HTTP
// trigger route and the custom routes added by the application. Correlation
// ids, access logging, request limits and bearer token checks are handled
// here before a request reaches a route handler.
package http
