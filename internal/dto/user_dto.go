package dto

import "time"

type UserProfileResponse struct {
	DisplayName string                 `json:"display_name"`
	Email       string                 `json:"email"`
	Preferences map[string]interface{} `json:"preferences"`
	UpdatedAt   *time.Time             `json:"updated_at,omitempty"`
}

type UpdateUserProfileRequest struct {
	DisplayName string                 `json:"display_name" validate:"max=120"`
	Email       string                 `json:"email" validate:"omitempty,email"`
	Preferences map[string]interface{} `json:"preferences"`
}

type UserSettingsResponse struct {
	Settings  map[string]interface{} `json:"settings"`
	UpdatedAt *time.Time             `json:"updated_at,omitempty"`
}

// SaveUserSettingsRequest merges the given keys into the stored settings;
// keys absent from the request are kept.
type SaveUserSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" validate:"required"`
}
