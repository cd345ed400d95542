package service

import (
	"context"
	"errors"
	"testing"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/repository/contract"
	"ai-market-analysis-be/internal/repository/specification"
	"ai-market-analysis-be/internal/repository/unitofwork"
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/pipeline"
	"ai-market-analysis-be/pkg/progress"
	"ai-market-analysis-be/pkg/search"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func specID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.AnalysisSession
	pending  []uuid.UUID
	inTx     bool
	updates  int
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.AnalysisSession) error {
	c := *session
	r.sessions[session.Id] = &c
	if r.inTx {
		r.pending = append(r.pending, session.Id)
	}
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.AnalysisSession) error {
	c := *session
	r.sessions[session.Id] = &c
	r.updates++
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisSession, error) {
	if id, ok := specID(specs); ok {
		if s, found := r.sessions[id]; found {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisSession, error) {
	out := make([]*entity.AnalysisSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type fakeReportRepo struct {
	upsertErr error
	reports   map[uuid.UUID]*entity.AnalysisReport
}

func (r *fakeReportRepo) Upsert(ctx context.Context, report *entity.AnalysisReport) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	c := *report
	r.reports[report.SessionId] = &c
	return nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, sessionId uuid.UUID) error {
	delete(r.reports, sessionId)
	return nil
}

func (r *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error) {
	return nil, nil
}

type fakeStepRepo struct{}

func (fakeStepRepo) Save(ctx context.Context, record *entity.StepRecord) error { return nil }
func (fakeStepRepo) DeleteBySession(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (fakeStepRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StepRecord, error) {
	return nil, nil
}
func (fakeStepRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*entity.Attachment
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *entity.Attachment) error {
	c := *attachment
	r.attachments[attachment.Id] = &c
	return nil
}

func (r *fakeAttachmentRepo) Update(ctx context.Context, attachment *entity.Attachment) error {
	c := *attachment
	r.attachments[attachment.Id] = &c
	return nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.attachments, id)
	return nil
}

func (r *fakeAttachmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	if id, ok := specID(specs); ok {
		if a, found := r.attachments[id]; found {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeAttachmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	return nil, nil
}

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get(ctx context.Context) (*entity.UserSettings, error) { return nil, nil }
func (fakeSettingsRepo) Save(ctx context.Context, settings *entity.UserSettings) error {
	return nil
}

// fakeUnitOfWork keeps everything in memory. Rollback discards sessions
// created since Begin so transactional behavior is observable.
type fakeUnitOfWork struct {
	sessions    *fakeSessionRepo
	reports     *fakeReportRepo
	attachments *fakeAttachmentRepo

	committed  bool
	rolledBack bool
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		sessions:    &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.AnalysisSession)},
		reports:     &fakeReportRepo{reports: make(map[uuid.UUID]*entity.AnalysisReport)},
		attachments: &fakeAttachmentRepo{attachments: make(map[uuid.UUID]*entity.Attachment)},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.sessions.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.committed = true
	u.sessions.inTx = false
	u.sessions.pending = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rolledBack = true
	for _, id := range u.sessions.pending {
		delete(u.sessions.sessions, id)
	}
	u.sessions.pending = nil
	u.sessions.inTx = false
	return nil
}

func (u *fakeUnitOfWork) AnalysisSessionRepository() contract.AnalysisSessionRepository {
	return u.sessions
}
func (u *fakeUnitOfWork) AnalysisReportRepository() contract.AnalysisReportRepository {
	return u.reports
}
func (u *fakeUnitOfWork) StepRecordRepository() contract.StepRecordRepository {
	return fakeStepRepo{}
}
func (u *fakeUnitOfWork) AttachmentRepository() contract.AttachmentRepository {
	return u.attachments
}
func (u *fakeUnitOfWork) UserSettingsRepository() contract.UserSettingsRepository {
	return fakeSettingsRepo{}
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestService(uow *fakeUnitOfWork) *analysisService {
	pipe := pipeline.New(
		ai.NewManager(nopLogger{}),
		search.NewManager(nopLogger{}),
		search.Options{},
		nopLogger{},
	)
	svc := NewAnalysisService(
		&fakeFactory{uow: uow},
		pipe,
		progress.NewRegistry(),
		nil,
		nil,
		nil,
		nil,
		nopLogger{},
		"mercado de %s no brasil desde 2022",
		"",
	)
	return svc.(*analysisService)
}

func TestCompleteTakesErrorPathWhenReportPersistFails(t *testing.T) {
	uow := newFakeUnitOfWork()
	id := uuid.New()
	uow.sessions.sessions[id] = &entity.AnalysisSession{
		Id:       id,
		Segmento: "fitness",
		Status:   entity.StatusRunning,
	}
	uow.reports.upsertErr = errors.New("disk full")

	svc := newTestService(uow)
	tracker := progress.NewTracker(id.String())

	svc.complete(context.Background(), id, tracker, map[string]interface{}{"avatar": "x"})

	session := uow.sessions.sessions[id]
	if session.Status != entity.StatusError {
		t.Fatalf("session.Status = %q, want %q", session.Status, entity.StatusError)
	}
	if session.ErrorMessage == "" {
		t.Error("session.ErrorMessage empty, want the persist failure recorded")
	}
	if uow.sessions.updates == 0 {
		t.Error("session never persisted after the failed upsert")
	}
	snap := tracker.Snapshot()
	if snap.Completed {
		t.Error("tracker marked completed although nothing was persisted")
	}
	if !snap.Failed {
		t.Error("tracker not marked failed after the failed upsert")
	}
}

func TestCompletePersistsReportAndSession(t *testing.T) {
	uow := newFakeUnitOfWork()
	id := uuid.New()
	uow.sessions.sessions[id] = &entity.AnalysisSession{
		Id:       id,
		Segmento: "fitness",
		Status:   entity.StatusRunning,
	}

	svc := newTestService(uow)
	tracker := progress.NewTracker(id.String())
	sections := map[string]interface{}{
		"avatar":   map[string]interface{}{"nome_ficticio": "Ana"},
		"insights": []interface{}{"a"},
	}

	svc.complete(context.Background(), id, tracker, sections)

	session := uow.sessions.sessions[id]
	if session.Status != entity.StatusCompleted {
		t.Fatalf("session.Status = %q, want %q", session.Status, entity.StatusCompleted)
	}
	if session.CompletedAt == nil {
		t.Error("session.CompletedAt not set")
	}
	report := uow.reports.reports[id]
	if report == nil {
		t.Fatal("no report persisted")
	}
	if len(report.Sections) != len(sections) {
		t.Errorf("report sections = %d, want %d", len(report.Sections), len(sections))
	}
	if !tracker.Snapshot().Completed {
		t.Error("tracker not completed after successful persist")
	}
}

func TestStartLeavesNoSessionWhenAttachmentUnknown(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newTestService(uow)

	_, err := svc.Start(context.Background(), &dto.StartAnalysisRequest{
		Segmento:      "fitness",
		AttachmentIds: []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, serverutils.ErrAttachmentMissing) {
		t.Fatalf("Start() error = %v, want %v", err, serverutils.ErrAttachmentMissing)
	}
	if !uow.rolledBack {
		t.Error("unit of work was not rolled back")
	}
	if uow.committed {
		t.Error("unit of work committed despite the rejected start")
	}
	if n := len(uow.sessions.sessions); n != 0 {
		t.Errorf("sessions left behind = %d, want 0", n)
	}
}
