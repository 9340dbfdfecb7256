// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"

	"inkpress/internal/auth"
	"inkpress/internal/models"
)

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UserService handles registration and credential checks.
type UserService struct {
	users UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new account with the USER role. Username and email
// must both be unused.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         models.RoleUser,
	})
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByUsername resolves a username to its account.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
