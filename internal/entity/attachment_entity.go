package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is an uploaded supporting file. SessionId is nil while the
// upload has not been linked to an analysis yet.
type Attachment struct {
	Id          uuid.UUID
	SessionId   *uuid.UUID
	FileName    string
	StoredPath  string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
