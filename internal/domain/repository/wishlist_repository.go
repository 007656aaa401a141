package repository

import (
	"context"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
)

// WishlistRepository defines store operations for wishlist entries.
type WishlistRepository interface {
	// Create persists e. Returns ErrDuplicateWishlist if the user already
	// has an entry for the same template slug.
	Create(ctx context.Context, e *entity.WishlistEntry) error
	// DeleteBySlug removes the user's entry for slug, or ErrNotFound.
	DeleteBySlug(ctx context.Context, userID, slug string) error
	// ListByUser returns the user's entries, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]entity.WishlistEntry, error)
	Exists(ctx context.Context, userID, slug string) (bool, error)
}
