package implementation

import (
	"context"
	"errors"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/mapper"
	"ai-market-analysis-be/internal/model"
	"ai-market-analysis-be/internal/repository/contract"
	"ai-market-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalysisReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewAnalysisReportRepository(db *gorm.DB) contract.AnalysisReportRepository {
	return &AnalysisReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *AnalysisReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnalysisReportRepositoryImpl) Upsert(ctx context.Context, report *entity.AnalysisReport) error {
	m := r.mapper.ReportToModel(report)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sections", "processing_time", "engine", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*report = *r.mapper.ReportToEntity(m)
	return nil
}

func (r *AnalysisReportRepositoryImpl) Delete(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Delete(&model.AnalysisReport{}).Error
}

func (r *AnalysisReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error) {
	var m model.AnalysisReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReportToEntity(&m), nil
}
