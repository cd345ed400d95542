package mapper

import (
	"time"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/model"
)

type UserSettingsMapper struct{}

func NewUserSettingsMapper() *UserSettingsMapper {
	return &UserSettingsMapper{}
}

func (m *UserSettingsMapper) ToEntity(s *model.UserSettings) *entity.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserSettings{
		Id:          s.Id,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		Preferences: jsonToMap(s.Preferences),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *UserSettingsMapper) ToModel(s *entity.UserSettings) *model.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.UserSettings{
		Id:          s.Id,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		Preferences: mapToJSON(s.Preferences),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
