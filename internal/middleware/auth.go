// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkpress/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// usernameKey is the context key for the authenticated username.
	usernameKey contextKey = "username"
)

// Authenticator parses a Bearer token from the Authorization header and,
// when it verifies, stores the username in the request context. Downstream
// handlers can access it via UsernameFromCtx(). This middleware does NOT
// enforce authentication — invalid or missing tokens leave the request
// anonymous.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			username, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				// Bad token — treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with a 401 JSON error.
// Must be applied after Authenticator in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UsernameFromCtx(r.Context()) == "" {
			writeJSONError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UsernameFromCtx extracts the authenticated username from the request
// context. Returns "" if the request is anonymous.
func UsernameFromCtx(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
