// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/blog"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
)

// Auth groups the authentication HTTP handlers.
type Auth struct {
	users  *blog.UserService
	secret []byte
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *blog.UserService, secret []byte) *Auth {
	return &Auth{users: users, secret: secret}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=40"`
	FullName string `json:"fullName" validate:"max=100"`
}

// authResponse is the body returned by both login and register.
type authResponse struct {
	Token    string    `json:"token"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

func (a *Auth) respondWithToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := auth.GenerateToken(user.Username, a.secret, auth.DefaultTokenTTL)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, r, http.StatusOK, authResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
}

// Login verifies credentials and returns a fresh token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	user, err := a.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, blog.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.respondWithToken(w, r, user)
}

// Register creates a new account and returns a token for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	user, err := a.users.Register(r.Context(), blog.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrUsernameTaken):
			respondError(w, r, http.StatusBadRequest, "Username is already taken")
		case errors.Is(err, blog.ErrEmailTaken):
			respondError(w, r, http.StatusBadRequest, "Email is already in use")
		default:
			slog.Error("registration failed", "error", err)
			respondError(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	a.respondWithToken(w, r, user)
}

// Me returns the profile of the authenticated user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromCtx(r.Context())

	user, err := a.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, blog.ErrUserNotFound) {
			respondError(w, r, http.StatusUnauthorized, "User not authenticated")
			return
		}
		slog.Error("profile lookup failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, r, http.StatusOK, user)
}
