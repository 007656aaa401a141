package entity

import "time"

// Export types and statuses accepted by the export log.
const (
	ExportTypeHTML   = "html"
	ExportTypeReact  = "react"
	ExportTypeNextJS = "nextjs"

	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ExportedTemplate records a single export event for a user's template.
// FileSize is in bytes and nil when the client did not report one.
type ExportedTemplate struct {
	ID         string
	UserID     string
	Name       string
	ExportType string
	Status     string
	FileSize   *int64
	Layout     []any // optional snapshot, opaque
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
