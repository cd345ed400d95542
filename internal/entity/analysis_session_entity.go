package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session lifecycle statuses. Terminal states are StatusCompleted and
// StatusError; StatusSaved is a parking state the client can continue from.
const (
	StatusRunning   = "running"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusError     = "error"
	StatusSaved     = "saved"
)

type AnalysisSession struct {
	Id                    uuid.UUID
	Segmento              string
	Produto               string
	PublicoAlvo           string
	ObjetivosEstrategicos string
	ContextoAdicional     string
	Query                 string
	Status                string
	CurrentStep           int
	StepsSaved            int
	ErrorMessage          string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
	CompletedAt           *time.Time
	DeletedAt             *time.Time
	IsDeleted             bool
}

// Terminal reports whether the session can never run again.
func (s *AnalysisSession) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusError
}

func (s *AnalysisSession) CanPause() bool {
	return s.Status == StatusRunning
}

func (s *AnalysisSession) CanResume() bool {
	return s.Status == StatusPaused
}

// CanSave guards the pause-then-save flow: only a paused session may be
// parked for later continuation.
func (s *AnalysisSession) CanSave() bool {
	return s.Status == StatusPaused
}

// CanContinue reports whether a new run may pick the session up from its
// last saved step.
func (s *AnalysisSession) CanContinue() bool {
	return s.Status == StatusSaved || s.Status == StatusPaused
}

// MarkCompleted transitions to the terminal success state. Returns false
// when the session already reached a terminal state; the first transition
// wins and later ones are dropped.
func (s *AnalysisSession) MarkCompleted(at time.Time) bool {
	if s.Terminal() {
		return false
	}
	s.Status = StatusCompleted
	s.CurrentStep = 0
	s.CompletedAt = &at
	s.ErrorMessage = ""
	return true
}

// MarkFailed transitions to the terminal error state. Idempotent the same
// way MarkCompleted is.
func (s *AnalysisSession) MarkFailed(message string) bool {
	if s.Terminal() {
		return false
	}
	s.Status = StatusError
	s.ErrorMessage = message
	return true
}
