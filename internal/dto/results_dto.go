package dto

import (
	"time"

	"ai-market-analysis-be/pkg/report"

	"github.com/google/uuid"
)

type ResultsResponse struct {
	SessionId      uuid.UUID                `json:"session_id"`
	Segmento       string                   `json:"segmento"`
	Produto        string                   `json:"produto"`
	Status         string                   `json:"status"`
	Engine         string                   `json:"engine,omitempty"`
	ProcessingTime float64                  `json:"processing_time,omitempty"`
	GeneratedAt    time.Time                `json:"generated_at"`
	Sections       []report.RenderedSection `json:"sections"`
}

type EmailReportRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ExportJSONResponse is the raw structured report for machine consumers.
type ExportJSONResponse struct {
	SessionId      uuid.UUID              `json:"session_id"`
	Segmento       string                 `json:"segmento"`
	Produto        string                 `json:"produto"`
	Engine         string                 `json:"engine,omitempty"`
	ProcessingTime float64                `json:"processing_time,omitempty"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Sections       map[string]interface{} `json:"sections"`
}
