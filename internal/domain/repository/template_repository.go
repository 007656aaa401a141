package repository

import (
	"context"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
)

// TemplatePatch carries the fields of a partial template update. Nil pointers
// (and a nil Layout) mean "leave unchanged".
type TemplatePatch struct {
	Name      *string
	Layout    []any
	Thumbnail *string
	IsPublic  *bool
}

// TemplateRepository defines store operations for saved templates. Read paths
// join the owning user's identity fields onto the result.
type TemplateRepository interface {
	Create(ctx context.Context, t *entity.SavedTemplate) error
	// ListByUser returns the user's templates, most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]entity.SavedTemplate, error)
	// ListPublic returns public templates, most recently updated first,
	// capped at limit.
	ListPublic(ctx context.Context, limit int) ([]entity.SavedTemplate, error)
	// GetVisible returns the template only if it is public or owned by
	// viewerID. An empty viewerID means an anonymous caller.
	GetVisible(ctx context.Context, id, viewerID string) (*entity.SavedTemplate, error)
	// Update applies patch to the template owned by userID, refreshes the
	// modification timestamp, and returns the updated record.
	Update(ctx context.Context, id, userID string, patch TemplatePatch) (*entity.SavedTemplate, error)
	Delete(ctx context.Context, id, userID string) error
}
