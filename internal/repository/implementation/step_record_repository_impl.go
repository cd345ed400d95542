package implementation

import (
	"context"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/mapper"
	"ai-market-analysis-be/internal/model"
	"ai-market-analysis-be/internal/repository/contract"
	"ai-market-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StepRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewStepRecordRepository(db *gorm.DB) contract.StepRecordRepository {
	return &StepRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *StepRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StepRecordRepositoryImpl) Save(ctx context.Context, record *entity.StepRecord) error {
	m := r.mapper.StepRecordToModel(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "step"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "payload"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*record = *r.mapper.StepRecordToEntity(m)
	return nil
}

func (r *StepRecordRepositoryImpl) DeleteBySession(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Delete(&model.StepRecord{}).Error
}

func (r *StepRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StepRecord, error) {
	var models []*model.StepRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.StepRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.StepRecordToEntity(m)
	}
	return entities, nil
}

func (r *StepRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.StepRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
