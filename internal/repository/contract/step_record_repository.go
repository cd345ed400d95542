package contract

import (
	"context"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StepRecordRepository interface {
	// Save inserts the record or replaces an earlier record for the same
	// session and step, so a resumed run overwrites stale outputs.
	Save(ctx context.Context, record *entity.StepRecord) error
	DeleteBySession(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StepRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
