// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the Inkpress API.
// Handlers are grouped by concern (auth, posts, categories) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError writes the API's standard error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, map[string]string{"error": msg})
}

// respondMessage writes the API's standard success envelope for deletions.
func respondMessage(w http.ResponseWriter, r *http.Request, msg string) {
	respondJSON(w, r, http.StatusOK, map[string]string{"message": msg})
}

// decodeJSON decodes the request body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
