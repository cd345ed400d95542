package dto

import (
	"time"

	"github.com/google/uuid"
)

// StartAnalysisRequest is the form payload the client submits. Field names
// stay in pt-BR to match the frontend form.
type StartAnalysisRequest struct {
	Segmento              string      `json:"segmento" validate:"required,max=200"`
	Produto               string      `json:"produto" validate:"max=200"`
	PublicoAlvo           string      `json:"publico_alvo" validate:"max=500"`
	ObjetivosEstrategicos string      `json:"objetivos_estrategicos" validate:"max=2000"`
	ContextoAdicional     string      `json:"contexto_adicional" validate:"max=5000"`
	Query                 string      `json:"query" validate:"max=500"`
	AttachmentIds         []uuid.UUID `json:"attachment_ids" validate:"max=10"`
}

type StartAnalysisResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
}

type SessionSummaryResponse struct {
	Id          uuid.UUID  `json:"id"`
	Segmento    string     `json:"segmento"`
	Produto     string     `json:"produto"`
	Status      string     `json:"status"`
	CurrentStep int        `json:"current_step"`
	StepsSaved  int        `json:"steps_saved"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type SessionListResponse struct {
	Sessions []SessionSummaryResponse `json:"sessions"`
	Total    int64                    `json:"total"`
}

type SessionStatusResponse struct {
	Id           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	CurrentStep  int        `json:"current_step"`
	StepsSaved   int        `json:"steps_saved"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type SessionActionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// ListSessionsQuery carries the optional list filters from the query string.
type ListSessionsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=running paused completed error saved"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
