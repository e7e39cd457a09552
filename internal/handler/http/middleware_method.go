// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-replisync/internal/utils"
	"github.com/MKhiriev/go-replisync/models"
)

// methodNotAllowed returns the router's MethodNotAllowed handler. It
// answers 405 with a JSON body and an Allow header listing the methods
// registered for the requested path.
func methodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				allowed = slices.Sorted(maps.Keys(route.Handlers))
				break
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteJSON(w, models.ErrorResponse{Error: "method " + r.Method + " is not allowed"}, http.StatusMethodNotAllowed)
	}
}
