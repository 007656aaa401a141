package entity

import "time"

// SavedTemplate is a user-authored page layout. Layout is an ordered list of
// section objects and is opaque to the backend; it is stored and returned as-is.
type SavedTemplate struct {
	ID                   string
	UserID               string
	Name                 string
	OriginalTemplateSlug string
	Layout               []any
	Thumbnail            string // URL, data URI, or /uploads path
	IsPublic             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Owner is populated on read paths that join the owning user.
	Owner *UserSummary
}
