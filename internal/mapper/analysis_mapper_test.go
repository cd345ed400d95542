package mapper

import (
	"reflect"
	"testing"
	"time"

	"ai-market-analysis-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewAnalysisMapper()

	updated := time.Now().Add(-time.Hour).Truncate(time.Second)
	src := &entity.AnalysisSession{
		Id:          uuid.New(),
		Segmento:    "fitness",
		Produto:     "aplicativo de treinos",
		Status:      entity.StatusPaused,
		CurrentStep: 7,
		StepsSaved:  6,
		CreatedAt:   time.Now().Add(-2 * time.Hour).Truncate(time.Second),
		UpdatedAt:   &updated,
	}

	got := m.SessionToEntity(m.SessionToModel(src))
	if !reflect.DeepEqual(got, src) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, src)
	}
}

func TestSessionToModelMarksDeletion(t *testing.T) {
	m := NewAnalysisMapper()

	deleted := time.Now().Truncate(time.Second)
	src := &entity.AnalysisSession{Id: uuid.New(), DeletedAt: &deleted}

	mod := m.SessionToModel(src)
	if !mod.DeletedAt.Valid || !mod.DeletedAt.Time.Equal(deleted) {
		t.Errorf("DeletedAt = %+v, want valid at %v", mod.DeletedAt, deleted)
	}

	back := m.SessionToEntity(mod)
	if !back.IsDeleted {
		t.Error("IsDeleted = false after round trip of deleted session")
	}
}

func TestNilMappersReturnNil(t *testing.T) {
	m := NewAnalysisMapper()

	if m.SessionToEntity(nil) != nil || m.SessionToModel(nil) != nil {
		t.Error("nil session did not map to nil")
	}
	if m.ReportToEntity(nil) != nil || m.ReportToModel(nil) != nil {
		t.Error("nil report did not map to nil")
	}
	if m.StepRecordToEntity(nil) != nil || m.StepRecordToModel(nil) != nil {
		t.Error("nil step record did not map to nil")
	}
}

func TestJSONToMap(t *testing.T) {
	tests := []struct {
		name string
		raw  datatypes.JSON
		want map[string]interface{}
	}{
		{name: "empty column", raw: nil, want: map[string]interface{}{}},
		{name: "corrupt payload", raw: datatypes.JSON(`{broken`), want: map[string]interface{}{}},
		{
			name: "valid payload",
			raw:  datatypes.JSON(`{"chave": "valor"}`),
			want: map[string]interface{}{"chave": "valor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonToMap(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("jsonToMap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapToJSONNilBecomesEmptyObject(t *testing.T) {
	if got := string(mapToJSON(nil)); got != "{}" {
		t.Errorf("mapToJSON(nil) = %q, want {}", got)
	}
}

func TestReportSectionsSurviveRoundTrip(t *testing.T) {
	m := NewAnalysisMapper()

	src := &entity.AnalysisReport{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		Sections: map[string]interface{}{
			"avatar":   map[string]interface{}{"perfil": "empreendedor"},
			"insights": []interface{}{"ponto um"},
		},
		CreatedAt: time.Now().Truncate(time.Second),
	}

	got := m.ReportToEntity(m.ReportToModel(src))
	if !reflect.DeepEqual(got.Sections, src.Sections) {
		t.Errorf("Sections = %v, want %v", got.Sections, src.Sections)
	}
}
