// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the handler to register with
// [chi.Mux.MethodNotAllowed].
//
// Chi calls it when the request path matches a route that does not serve the
// request method. The response is 405 with an Allow header listing the
// methods of the route. A path that only matches through a pattern, which
// the lookup does not expand, is answered with 404.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var found *chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				found = &route
				break
			}
		}

		if found == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if _, ok := found.Handlers[r.Method]; ok {
			router.ServeHTTP(w, r)
			return
		}

		allowed := make([]string, 0, len(found.Handlers))
		for method := range found.Handlers {
			allowed = append(allowed, method)
		}
		slices.Sort(allowed)

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
