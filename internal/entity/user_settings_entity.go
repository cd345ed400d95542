package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings is the single-profile preference record. The tool runs
// without accounts, so exactly one row is expected; preferences are an
// open key/value bag the client owns.
type UserSettings struct {
	Id          uuid.UUID
	DisplayName string
	Email       string
	Preferences map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
