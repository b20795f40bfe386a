// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := testUser("maria@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if byID == nil || byID.Email != "maria@example.com" {
		t.Fatalf("unexpected user by ID: %+v", byID)
	}

	byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("unexpected user by email: %+v", byEmail)
	}
	if byEmail.PasswordHash != "hash" {
		t.Errorf("expected password hash to round trip, got %q", byEmail.PasswordHash)
	}
}

func TestUserRepositoryFindAbsent(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}

	user, err = repo.FindByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testUser("maria@example.com")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err := repo.Create(ctx, testUser("maria@example.com"))
	if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
