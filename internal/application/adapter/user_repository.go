// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/domain/entity"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Create stores a new user. Returns domainerror.ErrEmailAlreadyExists on duplicates.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
