package implementation

import (
	"context"
	"errors"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/mapper"
	"ai-market-analysis-be/internal/model"
	"ai-market-analysis-be/internal/repository/contract"

	"gorm.io/gorm"
)

type UserSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserSettingsMapper
}

func NewUserSettingsRepository(db *gorm.DB) contract.UserSettingsRepository {
	return &UserSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserSettingsMapper(),
	}
}

func (r *UserSettingsRepositoryImpl) Get(ctx context.Context) (*entity.UserSettings, error) {
	var m model.UserSettings
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserSettingsRepositoryImpl) Save(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}
