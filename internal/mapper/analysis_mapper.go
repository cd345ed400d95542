package mapper

import (
	"encoding/json"
	"time"

	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

// Session mappers

func (m *AnalysisMapper) SessionToEntity(s *model.AnalysisSession) *entity.AnalysisSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.AnalysisSession{
		Id:                    s.Id,
		Segmento:              s.Segmento,
		Produto:               s.Produto,
		PublicoAlvo:           s.PublicoAlvo,
		ObjetivosEstrategicos: s.ObjetivosEstrategicos,
		ContextoAdicional:     s.ContextoAdicional,
		Query:                 s.Query,
		Status:                s.Status,
		CurrentStep:           s.CurrentStep,
		StepsSaved:            s.StepsSaved,
		ErrorMessage:          s.ErrorMessage,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
		CompletedAt:           s.CompletedAt,
		DeletedAt:             deletedAt,
		IsDeleted:             s.DeletedAt.Valid,
	}
}

func (m *AnalysisMapper) SessionToModel(s *entity.AnalysisSession) *model.AnalysisSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.AnalysisSession{
		Id:                    s.Id,
		Segmento:              s.Segmento,
		Produto:               s.Produto,
		PublicoAlvo:           s.PublicoAlvo,
		ObjetivosEstrategicos: s.ObjetivosEstrategicos,
		ContextoAdicional:     s.ContextoAdicional,
		Query:                 s.Query,
		Status:                s.Status,
		CurrentStep:           s.CurrentStep,
		StepsSaved:            s.StepsSaved,
		ErrorMessage:          s.ErrorMessage,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
		CompletedAt:           s.CompletedAt,
		DeletedAt:             deletedAt,
	}
}

// Report mappers

func (m *AnalysisMapper) ReportToEntity(r *model.AnalysisReport) *entity.AnalysisReport {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.AnalysisReport{
		Id:             r.Id,
		SessionId:      r.SessionId,
		Sections:       jsonToMap(r.Sections),
		ProcessingTime: r.ProcessingTime,
		Engine:         r.Engine,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      r.DeletedAt.Valid,
	}
}

func (m *AnalysisMapper) ReportToModel(r *entity.AnalysisReport) *model.AnalysisReport {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.AnalysisReport{
		Id:             r.Id,
		SessionId:      r.SessionId,
		Sections:       mapToJSON(r.Sections),
		ProcessingTime: r.ProcessingTime,
		Engine:         r.Engine,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

// Step record mappers

func (m *AnalysisMapper) StepRecordToEntity(r *model.StepRecord) *entity.StepRecord {
	if r == nil {
		return nil
	}

	return &entity.StepRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Step:      r.Step,
		Name:      r.Name,
		Category:  r.Category,
		Payload:   jsonToMap(r.Payload),
		CreatedAt: r.CreatedAt,
	}
}

func (m *AnalysisMapper) StepRecordToModel(r *entity.StepRecord) *model.StepRecord {
	if r == nil {
		return nil
	}

	return &model.StepRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Step:      r.Step,
		Name:      r.Name,
		Category:  r.Category,
		Payload:   mapToJSON(r.Payload),
		CreatedAt: r.CreatedAt,
	}
}

// jsonToMap decodes a jsonb column; broken payloads become an empty map so
// reads never fail on a single corrupt row.
func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	out := make(map[string]interface{})
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return make(map[string]interface{})
	}
	return out
}

func mapToJSON(value map[string]interface{}) datatypes.JSON {
	if value == nil {
		return datatypes.JSON([]byte("{}"))
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
