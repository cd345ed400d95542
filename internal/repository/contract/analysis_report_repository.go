package contract

import (
	"context"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AnalysisReportRepository interface {
	// Upsert creates the session's report row or replaces its sections.
	Upsert(ctx context.Context, report *entity.AnalysisReport) error
	Delete(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error)
}
