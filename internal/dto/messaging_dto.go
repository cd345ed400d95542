package dto

import (
	"github.com/google/uuid"
)

// StepSavedMessage is the internal bus payload emitted after every pipeline
// step so the consumer can persist the step output off the hot path.
type StepSavedMessage struct {
	SessionId uuid.UUID              `json:"session_id"`
	Step      int                    `json:"step"`
	Name      string                 `json:"name"`
	Category  string                 `json:"category"`
	Sections  map[string]interface{} `json:"sections"`
}
