package entity

import (
	"time"

	"github.com/google/uuid"
)

// StepRecord is the auto-saved output of one pipeline step. The continue
// flow replays these to rebuild a saved session's report without rerunning
// the finished steps.
type StepRecord struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Step      int
	Name      string
	Category  string
	Payload   map[string]interface{}
	CreatedAt time.Time
}
