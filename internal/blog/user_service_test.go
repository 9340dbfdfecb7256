package blog

import (
	"context"
	"errors"
	"testing"

	"inkpress/internal/models"
	"inkpress/internal/store/memory"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(memory.NewUserRepository())
}

func TestUserRegister(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		FullName: "Alice Ames",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want USER", user.Role)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}
}

func TestUserRegisterConflicts(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "x"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register() duplicate username error = %v, want ErrUsernameTaken", err)
	}

	_, err = s.Register(ctx, RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "x"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestUserAuthenticate(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := s.Authenticate(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want alice", user.Username)
	}

	if _, err := s.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "x"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := s.GetByUsername(ctx, "alice"); err != nil {
		t.Errorf("GetByUsername() error = %v", err)
	}
	if _, err := s.GetByUsername(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByUsername() unknown error = %v, want ErrUserNotFound", err)
	}
}
