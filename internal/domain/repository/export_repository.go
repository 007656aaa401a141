package repository

import (
	"context"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
)

// ExportRepository defines store operations for the export event log.
type ExportRepository interface {
	Create(ctx context.Context, e *entity.ExportedTemplate) error
	// ListByUser returns the user's export records, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.ExportedTemplate, error)
	Delete(ctx context.Context, id, userID string) error
}
