package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the API's standard error envelope without pulling
// the handlers package into the middleware chain.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
