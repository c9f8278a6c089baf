package service

import (
	"context"
	"errors"
	"testing"

	"avicena/internal/repository"
)

func setupAS(t *testing.T) *AuthService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewAuthService(repository.NewMemoryUsers(store))
}

func TestAuth_RegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)

	u, err := as.Register(ctx, "bob", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 || u.PasswordHash == "pw1" {
		t.Fatalf("password stored in plain text")
	}

	ok, err := as.Verify(ctx, "bob", "pw1")
	if err != nil || !ok {
		t.Fatalf("verify correct password: %v %v", ok, err)
	}
	ok, err = as.Verify(ctx, "bob", "pw2")
	if err != nil || ok {
		t.Fatalf("verify wrong password: %v %v", ok, err)
	}
	// unknown user answers exactly like a wrong password
	ok, err = as.Verify(ctx, "alice", "pw1")
	if err != nil || ok {
		t.Fatalf("verify unknown user: %v %v", ok, err)
	}
}

func TestAuth_Register_Duplicate(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)

	if _, err := as.Register(ctx, "bob", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := as.Register(ctx, "bob", "pw2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuth_Register_Invalid(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)

	if _, err := as.Register(ctx, "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := as.Register(ctx, "bob", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
