package entity

import "time"

// WishlistEntry marks a catalog template a user wants to come back to.
// A user can hold at most one entry per template slug.
type WishlistEntry struct {
	ID                string
	UserID            string
	TemplateSlug      string
	TemplateName      string
	TemplateThumbnail string
	TemplateCategory  string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
