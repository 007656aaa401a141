package repository

import (
	"context"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	// Create persists u and fills in ID and timestamps. Returns
	// ErrDuplicateEmail or ErrDuplicateUsername on a uniqueness violation.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail expects an already-lowercased email.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByEmailOrUsername returns the first user matching either field,
	// or ErrNotFound.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
}
