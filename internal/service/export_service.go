package service

import (
	"context"
	"fmt"
	"time"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/pkg/mailer"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/repository/specification"
	"ai-market-analysis-be/internal/repository/unitofwork"
	"ai-market-analysis-be/pkg/report"

	"github.com/google/uuid"
)

type IExportService interface {
	Results(ctx context.Context, id uuid.UUID) (*dto.ResultsResponse, error)
	ExportJSON(ctx context.Context, id uuid.UUID) (*dto.ExportJSONResponse, error)
	ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	EmailReport(ctx context.Context, id uuid.UUID, toEmail string) error
}

type exportService struct {
	uowFactory   unitofwork.RepositoryFactory
	renderer     *report.Renderer
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewExportService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IExportService {
	return &exportService{
		uowFactory:   uowFactory,
		renderer:     report.NewRenderer(),
		emailService: emailService,
		logger:       log,
	}
}

// Results renders the report sections for display. Partial reports of paused
// and saved sessions render too; only a session with nothing generated yet
// is rejected.
func (s *exportService) Results(ctx context.Context, id uuid.UUID) (*dto.ResultsResponse, error) {
	session, rpt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ResultsResponse{
		SessionId:      session.Id,
		Segmento:       session.Segmento,
		Produto:        session.Produto,
		Status:         session.Status,
		Engine:         rpt.Engine,
		ProcessingTime: rpt.ProcessingTime,
		GeneratedAt:    reportTime(rpt),
		Sections:       s.renderer.Render(rpt.Sections),
	}, nil
}

func (s *exportService) ExportJSON(ctx context.Context, id uuid.UUID) (*dto.ExportJSONResponse, error) {
	session, rpt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ExportJSONResponse{
		SessionId:      session.Id,
		Segmento:       session.Segmento,
		Produto:        session.Produto,
		Engine:         rpt.Engine,
		ProcessingTime: rpt.ProcessingTime,
		GeneratedAt:    reportTime(rpt),
		Sections:       rpt.Sections,
	}, nil
}

func (s *exportService) ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	session, rpt, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := report.BuildPDF(report.PDFMeta{
		SessionID:   session.Id.String(),
		Segment:     session.Segmento,
		Product:     session.Produto,
		GeneratedAt: reportTime(rpt),
	}, rpt.Sections)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("analise_%s.pdf", session.Id)
	return pdf, fileName, nil
}

func (s *exportService) EmailReport(ctx context.Context, id uuid.UUID, toEmail string) error {
	if s.emailService == nil {
		return serverutils.NewAppError(503, "Envio de e-mail não configurado")
	}

	pdf, fileName, err := s.ExportPDF(ctx, id)
	if err != nil {
		return err
	}

	subject := "Sua análise de mercado"
	if err := s.emailService.SendReport(toEmail, subject, pdf, fileName); err != nil {
		s.logger.Error("Export", "Failed to email report", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("Export", "Report emailed", map[string]interface{}{
		"session_id": id,
	})
	return nil
}

func (s *exportService) load(ctx context.Context, id uuid.UUID) (*entity.AnalysisSession, *entity.AnalysisReport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.AnalysisSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, serverutils.ErrSessionNotFound
	}

	rpt, err := uow.AnalysisReportRepository().FindOne(ctx, specification.BySession{SessionID: id})
	if err != nil {
		return nil, nil, err
	}
	if rpt == nil || len(rpt.Sections) == 0 {
		return nil, nil, serverutils.ErrReportNotReady
	}

	return session, rpt, nil
}

func reportTime(rpt *entity.AnalysisReport) time.Time {
	if rpt.UpdatedAt != nil {
		return *rpt.UpdatedAt
	}
	return rpt.CreatedAt
}
