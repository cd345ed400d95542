package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/repository/specification"
	"ai-market-analysis-be/internal/repository/unitofwork"
	"ai-market-analysis-be/internal/websocket"
	"ai-market-analysis-be/pkg/events"
	pktNats "ai-market-analysis-be/pkg/nats"
	"ai-market-analysis-be/pkg/pipeline"
	"ai-market-analysis-be/pkg/progress"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	Start(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error)
	List(ctx context.Context, q *dto.ListSessionsQuery) (*dto.SessionListResponse, error)
	Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error)
	Progress(ctx context.Context, id uuid.UUID) (*dto.ProgressResponse, error)
	Pause(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error)
	Resume(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error)
	Save(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error)
	Continue(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	uowFactory       unitofwork.RepositoryFactory
	pipeline         *pipeline.Pipeline
	registry         *progress.Registry
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	hub              *websocket.Hub
	exportService    IExportService
	logger           logger.ILogger
	defaultQueryTpl  string
	reportEmail      string // when set, finished reports are mailed here

	// live pause/resume handles for sessions running on this instance
	mu       sync.Mutex
	controls map[uuid.UUID]*pipeline.Control
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	pipe *pipeline.Pipeline,
	registry *progress.Registry,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	exportService IExportService,
	log logger.ILogger,
	defaultQueryTpl string,
	reportEmail string,
) IAnalysisService {
	return &analysisService{
		uowFactory:       uowFactory,
		pipeline:         pipe,
		registry:         registry,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		hub:              hub,
		exportService:    exportService,
		logger:           log,
		defaultQueryTpl:  defaultQueryTpl,
		reportEmail:      reportEmail,
		controls:         make(map[uuid.UUID]*pipeline.Control),
	}
}

func (s *analysisService) Start(ctx context.Context, req *dto.StartAnalysisRequest) (*dto.StartAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		subject := req.Segmento
		if req.Produto != "" {
			subject = fmt.Sprintf("%s %s", req.Produto, req.Segmento)
		}
		query = fmt.Sprintf(s.defaultQueryTpl, subject)
	}

	session := entity.AnalysisSession{
		Id:                    uuid.New(),
		Segmento:              req.Segmento,
		Produto:               req.Produto,
		PublicoAlvo:           req.PublicoAlvo,
		ObjetivosEstrategicos: req.ObjetivosEstrategicos,
		ContextoAdicional:     req.ContextoAdicional,
		Query:                 query,
		Status:                entity.StatusRunning,
		CreatedAt:             time.Now(),
	}

	// Create and attachment linking share a transaction so a rejected start
	// leaves no phantom session behind.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.AnalysisSessionRepository().Create(ctx, &session); err != nil {
		uow.Rollback()
		return nil, err
	}

	for _, attachmentId := range req.AttachmentIds {
		attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByID{ID: attachmentId})
		if err != nil {
			uow.Rollback()
			return nil, err
		}
		if attachment == nil {
			uow.Rollback()
			return nil, serverutils.ErrAttachmentMissing
		}
		sid := session.Id
		attachment.SessionId = &sid
		if err := uow.AttachmentRepository().Update(ctx, attachment); err != nil {
			uow.Rollback()
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	tracker := s.registry.Create(session.Id.String())
	ctl := pipeline.NewControl()
	s.setControl(session.Id, ctl)

	s.publishEvent(ctx, events.TypeSessionStarted, session.Id, nil)

	go s.run(session.Id, s.inputFromSession(&session), nil, 1, tracker, ctl)

	return &dto.StartAnalysisResponse{
		SessionId: session.Id,
		Status:    session.Status,
	}, nil
}

func (s *analysisService) List(ctx context.Context, q *dto.ListSessionsQuery) (*dto.SessionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := q.Limit
	if limit == 0 {
		limit = 50
	}

	filters := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: q.Offset},
	}
	countFilters := []specification.Specification{}
	if q.Status != "" {
		filters = append(filters, specification.ByStatus{Status: q.Status})
		countFilters = append(countFilters, specification.ByStatus{Status: q.Status})
	}

	sessions, err := uow.AnalysisSessionRepository().FindAll(ctx, filters...)
	if err != nil {
		return nil, err
	}
	total, err := uow.AnalysisSessionRepository().Count(ctx, countFilters...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, dto.SessionSummaryResponse{
			Id:          session.Id,
			Segmento:    session.Segmento,
			Produto:     session.Produto,
			Status:      session.Status,
			CurrentStep: session.CurrentStep,
			StepsSaved:  session.StepsSaved,
			CreatedAt:   session.CreatedAt,
			CompletedAt: session.CompletedAt,
		})
	}

	return &dto.SessionListResponse{Sessions: out, Total: total}, nil
}

func (s *analysisService) Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.SessionStatusResponse{
		Id:           session.Id,
		Status:       session.Status,
		CurrentStep:  session.CurrentStep,
		StepsSaved:   session.StepsSaved,
		ErrorMessage: session.ErrorMessage,
		CreatedAt:    session.CreatedAt,
		CompletedAt:  session.CompletedAt,
	}, nil
}

// Progress prefers the live tracker; when none exists (finished earlier or
// server restarted) the snapshot is reconstructed from the persisted session.
func (s *analysisService) Progress(ctx context.Context, id uuid.UUID) (*dto.ProgressResponse, error) {
	if tracker, ok := s.registry.Get(id.String()); ok {
		return &dto.ProgressResponse{
			Snapshot: tracker.Snapshot(),
			Logs:     tracker.Logs(),
		}, nil
	}

	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := progress.Snapshot{
		SessionID:          session.Id.String(),
		CurrentStep:        session.StepsSaved,
		TotalSteps:         pipeline.TotalSteps,
		Percentage:         float64(session.StepsSaved) / float64(pipeline.TotalSteps) * 100,
		EstimatedRemaining: "0m",
	}

	switch session.Status {
	case entity.StatusCompleted:
		snapshot.Completed = true
		snapshot.Percentage = 100
		snapshot.CurrentStep = pipeline.TotalSteps
		snapshot.CurrentMessage = "Análise concluída"
	case entity.StatusError:
		snapshot.Failed = true
		snapshot.Percentage = 0
		snapshot.CurrentMessage = fmt.Sprintf("Erro: %s", session.ErrorMessage)
	case entity.StatusPaused:
		snapshot.CurrentMessage = "Análise pausada"
	case entity.StatusSaved:
		snapshot.CurrentMessage = "Análise salva"
	default:
		// Running with no tracker: the instance that ran it is gone.
		snapshot.CurrentMessage = "Progresso indisponível"
	}
	snapshot.DetailedMessage = snapshot.CurrentMessage

	return &dto.ProgressResponse{Snapshot: snapshot}, nil
}

func (s *analysisService) Pause(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.CanPause() {
		return nil, serverutils.ErrSessionNotRunning
	}

	if ctl, ok := s.getControl(id); ok {
		ctl.Pause()
	}

	session.Status = entity.StatusPaused
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeSessionPaused, id, nil)
	s.pushStatus(id, entity.StatusPaused)

	return &dto.SessionActionResponse{Id: id, Status: session.Status}, nil
}

func (s *analysisService) Resume(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.CanResume() {
		return nil, serverutils.ErrSessionNotPaused
	}

	ctl, ok := s.getControl(id)
	if !ok {
		// The running goroutine is gone (restart). Relaunch from the last
		// saved step instead of unpausing.
		return s.relaunch(ctx, session)
	}
	ctl.Resume()

	session.Status = entity.StatusRunning
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeSessionResumed, id, nil)
	s.pushStatus(id, entity.StatusRunning)

	return &dto.SessionActionResponse{Id: id, Status: session.Status}, nil
}

// Save parks a paused analysis for later continuation: the pipeline goroutine
// is released, completed steps stay persisted.
func (s *analysisService) Save(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.CanSave() {
		return nil, serverutils.ErrSessionNotPaused
	}

	if ctl, ok := s.getControl(id); ok {
		ctl.Cancel()
	}
	s.removeControl(id)
	s.registry.Remove(id.String())

	session.Status = entity.StatusSaved
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	s.pushStatus(id, entity.StatusSaved)

	return &dto.SessionActionResponse{Id: id, Status: session.Status}, nil
}

// Continue relaunches a saved session from the step after its last saved one.
func (s *analysisService) Continue(ctx context.Context, id uuid.UUID) (*dto.SessionActionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.CanContinue() {
		return nil, serverutils.ErrSessionNotPaused
	}

	return s.relaunch(ctx, session)
}

func (s *analysisService) relaunch(ctx context.Context, session *entity.AnalysisSession) (*dto.SessionActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.StepRecordRepository().FindAll(ctx,
		specification.BySession{SessionID: session.Id},
		specification.OrderBy{Field: "step"},
	)
	if err != nil {
		return nil, err
	}

	prior := make(map[string]interface{})
	startFrom := 1
	for _, record := range records {
		for k, v := range record.Payload {
			prior[k] = v
		}
		if record.Step >= startFrom {
			startFrom = record.Step + 1
		}
	}

	session.Status = entity.StatusRunning
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	tracker := s.registry.Create(session.Id.String())
	ctl := pipeline.NewControl()
	s.setControl(session.Id, ctl)

	s.publishEvent(ctx, events.TypeSessionResumed, session.Id, map[string]interface{}{
		"start_from": startFrom,
	})
	s.pushStatus(session.Id, entity.StatusRunning)

	go s.run(session.Id, s.inputFromSession(session), prior, startFrom, tracker, ctl)

	return &dto.SessionActionResponse{Id: session.Id, Status: session.Status}, nil
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return err
	}

	if ctl, ok := s.getControl(id); ok {
		ctl.Cancel()
	}
	s.removeControl(id)
	s.registry.Remove(id.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.StepRecordRepository().DeleteBySession(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.AnalysisReportRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.AnalysisSessionRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeSessionDeleted, id, map[string]interface{}{
		"segmento": session.Segmento,
	})

	return nil
}

// run drives the pipeline for one session. It owns the terminal transition:
// whichever of completion or failure happens first is persisted, later
// signals are dropped.
func (s *analysisService) run(
	sessionID uuid.UUID,
	input pipeline.Input,
	prior map[string]interface{},
	startFrom int,
	tracker *progress.Tracker,
	ctl *pipeline.Control,
) {
	ctx := context.Background()
	defer s.removeControl(sessionID)

	onStep := func(result pipeline.StepResult) {
		payload, err := json.Marshal(dto.StepSavedMessage{
			SessionId: sessionID,
			Step:      result.Step,
			Name:      result.Name,
			Category:  result.Category,
			Sections:  result.Sections,
		})
		if err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				s.logger.Warn("Analysis", "Failed to publish step auto-save", map[string]interface{}{
					"session_id": sessionID,
					"step":       result.Step,
					"error":      err.Error(),
				})
			}
		}
		if s.hub != nil {
			s.hub.PushProgress(sessionID, "progress", tracker.Snapshot())
		}
	}

	sections, err := s.pipeline.Run(ctx, input, prior, startFrom, tracker, ctl, onStep)
	if err != nil {
		if err == pipeline.ErrCanceled {
			// Saved or deleted mid-run; status already set by the caller.
			s.logger.Info("Analysis", "Pipeline canceled", map[string]interface{}{
				"session_id": sessionID,
			})
			return
		}
		s.fail(ctx, sessionID, tracker, err)
		return
	}

	s.complete(ctx, sessionID, tracker, sections)
}

func (s *analysisService) complete(ctx context.Context, sessionID uuid.UUID, tracker *progress.Tracker, sections map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.AnalysisSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil || session == nil {
		s.logger.Error("Analysis", "Completed session vanished", map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	report := entity.AnalysisReport{
		Id:             uuid.New(),
		SessionId:      sessionID,
		Sections:       sections,
		ProcessingTime: tracker.Snapshot().ElapsedSeconds,
		Engine:         s.pipeline.ActiveProvider(),
	}
	if err := uow.AnalysisReportRepository().Upsert(ctx, &report); err != nil {
		s.fail(ctx, sessionID, tracker, fmt.Errorf("persist report: %w", err))
		return
	}

	if !session.MarkCompleted(time.Now()) {
		return
	}
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		s.fail(ctx, sessionID, tracker, fmt.Errorf("persist completion: %w", err))
		return
	}

	// The tracker turns terminal-successful only after the rows are durable,
	// so a failed persist can still take the error path.
	tracker.Complete()

	s.publishEvent(ctx, events.TypeSessionCompleted, sessionID, map[string]interface{}{
		"sections": len(sections),
	})
	s.pushStatus(sessionID, entity.StatusCompleted)

	s.logger.Info("Analysis", "Analysis completed", map[string]interface{}{
		"session_id": sessionID,
		"sections":   len(sections),
	})

	if s.exportService != nil && s.reportEmail != "" {
		go func() {
			if err := s.exportService.EmailReport(context.Background(), sessionID, s.reportEmail); err != nil {
				s.logger.Warn("Analysis", "Failed to deliver finished report by email", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
		}()
	}
}

func (s *analysisService) fail(ctx context.Context, sessionID uuid.UUID, tracker *progress.Tracker, cause error) {
	if !tracker.Fail(cause.Error()) {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.AnalysisSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil || session == nil {
		return
	}

	if session.MarkFailed(cause.Error()) {
		if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
			s.logger.Error("Analysis", "Failed to persist failure", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.TypeSessionFailed, sessionID, map[string]interface{}{
		"error": cause.Error(),
	})
	s.pushStatus(sessionID, entity.StatusError)

	s.logger.Error("Analysis", "Analysis failed", map[string]interface{}{
		"session_id": sessionID,
		"error":      cause.Error(),
	})
}

func (s *analysisService) findSession(ctx context.Context, id uuid.UUID) (*entity.AnalysisSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.AnalysisSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrSessionNotFound
	}
	return session, nil
}

func (s *analysisService) inputFromSession(session *entity.AnalysisSession) pipeline.Input {
	return pipeline.Input{
		Segment:    session.Segmento,
		Product:    session.Produto,
		Audience:   session.PublicoAlvo,
		Objectives: session.ObjetivosEstrategicos,
		Context:    session.ContextoAdicional,
		Query:      session.Query,
	}
}

func (s *analysisService) publishEvent(ctx context.Context, eventType string, sessionID uuid.UUID, extra map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewSessionEvent(eventType, sessionID.String(), extra)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Analysis", "Failed to publish lifecycle event", map[string]interface{}{
			"event":      eventType,
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *analysisService) pushStatus(sessionID uuid.UUID, status string) {
	if s.hub == nil {
		return
	}
	s.hub.PushProgress(sessionID, "status", map[string]interface{}{
		"session_id": sessionID.String(),
		"status":     status,
	})
}

func (s *analysisService) setControl(id uuid.UUID, ctl *pipeline.Control) {
	s.mu.Lock()
	s.controls[id] = ctl
	s.mu.Unlock()
}

func (s *analysisService) getControl(id uuid.UUID) (*pipeline.Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctl, ok := s.controls[id]
	return ctl, ok
}

func (s *analysisService) removeControl(id uuid.UUID) {
	s.mu.Lock()
	delete(s.controls, id)
	s.mu.Unlock()
}
