package unitofwork

import (
	"context"

	"ai-market-analysis-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AnalysisSessionRepository() contract.AnalysisSessionRepository
	AnalysisReportRepository() contract.AnalysisReportRepository
	StepRecordRepository() contract.StepRecordRepository
	AttachmentRepository() contract.AttachmentRepository
	UserSettingsRepository() contract.UserSettingsRepository
}
