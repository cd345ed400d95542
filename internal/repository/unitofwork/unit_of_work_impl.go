package unitofwork

import (
	"context"
	"fmt"

	"ai-market-analysis-be/internal/repository/contract"
	"ai-market-analysis-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) AnalysisSessionRepository() contract.AnalysisSessionRepository {
	return implementation.NewAnalysisSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnalysisReportRepository() contract.AnalysisReportRepository {
	return implementation.NewAnalysisReportRepository(u.getDB())
}

func (u *UnitOfWorkImpl) StepRecordRepository() contract.StepRecordRepository {
	return implementation.NewStepRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AttachmentRepository() contract.AttachmentRepository {
	return implementation.NewAttachmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserSettingsRepository() contract.UserSettingsRepository {
	return implementation.NewUserSettingsRepository(u.getDB())
}
