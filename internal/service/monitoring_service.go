package service

import (
	"context"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/search"

	"gorm.io/gorm"
)

type IMonitoringService interface {
	Health(ctx context.Context) *dto.HealthResponse
	ProvidersStatus(ctx context.Context) *dto.ProvidersStatusResponse
	ResetAIProvider(ctx context.Context, name string)
	ResetSearchEngine(ctx context.Context, name string)
	Logs(ctx context.Context, q *dto.LogsQuery) ([]logger.LogEntry, error)
}

type monitoringService struct {
	db            *gorm.DB
	aiManager     *ai.Manager
	searchManager *search.Manager
	logger        logger.ILogger
}

func NewMonitoringService(
	db *gorm.DB,
	aiManager *ai.Manager,
	searchManager *search.Manager,
	log logger.ILogger,
) IMonitoringService {
	return &monitoringService{
		db:            db,
		aiManager:     aiManager,
		searchManager: searchManager,
		logger:        log,
	}
}

func (s *monitoringService) Health(ctx context.Context) *dto.HealthResponse {
	dbStatus := "ok"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	providers := 0
	for _, p := range s.aiManager.Status() {
		if p.Available {
			providers++
		}
	}

	engines := 0
	for _, e := range s.searchManager.Status() {
		if e.Available {
			engines++
		}
	}

	status := "ok"
	if dbStatus != "ok" || providers == 0 {
		status = "degraded"
	}

	return &dto.HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Providers: providers,
		Engines:   engines,
	}
}

func (s *monitoringService) ProvidersStatus(ctx context.Context) *dto.ProvidersStatusResponse {
	return &dto.ProvidersStatusResponse{
		AI:     s.aiManager.Status(),
		Search: s.searchManager.Status(),
	}
}

func (s *monitoringService) ResetAIProvider(ctx context.Context, name string) {
	s.aiManager.ResetErrors(name)
	s.logger.Info("Monitoring", "AI provider errors reset", map[string]interface{}{
		"provider": name,
	})
}

func (s *monitoringService) ResetSearchEngine(ctx context.Context, name string) {
	s.searchManager.ResetErrors(name)
	s.logger.Info("Monitoring", "Search engine errors reset", map[string]interface{}{
		"engine": name,
	})
}

func (s *monitoringService) Logs(ctx context.Context, q *dto.LogsQuery) ([]logger.LogEntry, error) {
	limit := q.Limit
	if limit == 0 {
		limit = 100
	}
	page := q.Page
	if page == 0 {
		page = 1
	}

	level := ""
	switch q.Level {
	case "debug":
		level = "DEBUG"
	case "info":
		level = "INFO"
	case "warn":
		level = "WARN"
	case "error":
		level = "ERROR"
	}

	return s.logger.GetLogs(level, limit, (page-1)*limit)
}
