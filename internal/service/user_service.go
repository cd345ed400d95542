package service

import (
	"context"
	"time"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	Profile(ctx context.Context) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateUserProfileRequest) (*dto.UserProfileResponse, error)
	Settings(ctx context.Context) (*dto.UserSettingsResponse, error)
	SaveSettings(ctx context.Context, req *dto.SaveUserSettingsRequest) (*dto.UserSettingsResponse, error)
}

// userService manages the single local profile. The tool has no accounts;
// the profile stores display preferences and the default export email.
type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) Profile(ctx context.Context) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &dto.UserProfileResponse{
			Preferences: map[string]interface{}{},
		}, nil
	}

	return toProfileResponse(settings), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateUserProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{
			Id:        uuid.New(),
			CreatedAt: time.Now(),
		}
	}

	settings.DisplayName = req.DisplayName
	settings.Email = req.Email
	if req.Preferences != nil {
		settings.Preferences = req.Preferences
	}

	if err := uow.UserSettingsRepository().Save(ctx, settings); err != nil {
		return nil, err
	}

	return toProfileResponse(settings), nil
}

func (s *userService) Settings(ctx context.Context) (*dto.UserSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &dto.UserSettingsResponse{Settings: map[string]interface{}{}}, nil
	}

	return toSettingsResponse(settings), nil
}

func (s *userService) SaveSettings(ctx context.Context, req *dto.SaveUserSettingsRequest) (*dto.UserSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.UserSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{
			Id:        uuid.New(),
			CreatedAt: time.Now(),
		}
	}

	if settings.Preferences == nil {
		settings.Preferences = make(map[string]interface{})
	}
	for k, v := range req.Settings {
		settings.Preferences[k] = v
	}

	if err := uow.UserSettingsRepository().Save(ctx, settings); err != nil {
		return nil, err
	}

	return toSettingsResponse(settings), nil
}

func toSettingsResponse(settings *entity.UserSettings) *dto.UserSettingsResponse {
	prefs := settings.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	return &dto.UserSettingsResponse{
		Settings:  prefs,
		UpdatedAt: settings.UpdatedAt,
	}
}

func toProfileResponse(settings *entity.UserSettings) *dto.UserProfileResponse {
	prefs := settings.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	return &dto.UserProfileResponse{
		DisplayName: settings.DisplayName,
		Email:       settings.Email,
		Preferences: prefs,
		UpdatedAt:   settings.UpdatedAt,
	}
}
