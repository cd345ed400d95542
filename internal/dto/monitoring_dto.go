package dto

import (
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/search"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Providers int    `json:"providers_available"`
	Engines   int    `json:"engines_available"`
}

type ProvidersStatusResponse struct {
	AI     []ai.ProviderStatus    `json:"ai_providers"`
	Search []search.EngineStatus  `json:"search_engines"`
}

type ResetProviderRequest struct {
	Name string `json:"name" validate:"max=40"`
}

type LogsQuery struct {
	Level string `query:"level" validate:"omitempty,oneof=debug info warn error"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
}
