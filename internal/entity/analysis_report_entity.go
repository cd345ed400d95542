package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisReport holds the accumulated report sections for one session.
// Sections are opaque payloads keyed by section name; the renderer decides
// how each shape is displayed.
type AnalysisReport struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	Sections       map[string]interface{}
	ProcessingTime float64 // seconds the pipeline ran for
	Engine         string  // AI provider that produced the final sections
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
