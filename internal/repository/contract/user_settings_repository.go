package contract

import (
	"context"

	"ai-market-analysis-be/internal/entity"
)

type UserSettingsRepository interface {
	// Get returns the single profile row, or nil when none exists yet.
	Get(ctx context.Context) (*entity.UserSettings, error)
	// Save creates or updates the profile row.
	Save(ctx context.Context, settings *entity.UserSettings) error
}
