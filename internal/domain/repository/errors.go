package repository

import "errors"

// Sentinel errors surfaced by repository implementations. The store's own
// uniqueness indexes back the duplicate errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateWishlist = errors.New("template already in wishlist")
)
