package pipeline

import (
	"context"
	"fmt"
	"testing"

	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/llm"
	"ai-market-analysis-be/pkg/progress"
	"ai-market-analysis-be/pkg/report"
	"ai-market-analysis-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type stubLLM struct {
	calls  int
	answer string
	err    error
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type stubSearch struct {
	calls   int
	results []search.Result
	err     error
}

func (s *stubSearch) Name() string { return "stub-search" }

func (s *stubSearch) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newTestPipeline(llmStub llm.LLMProvider, searchStub search.SearchProvider) *Pipeline {
	log := nopLogger{}
	return New(
		ai.NewManager(log, llmStub),
		search.NewManager(log, searchStub),
		search.Options{MaxResults: 5, CountryCode: "BR", Language: "pt-br"},
		log,
	)
}

func fitnessInput() Input {
	return Input{
		Segment:    "fitness",
		Product:    "aplicativo de treinos",
		Audience:   "iniciantes em musculação",
		Objectives: "crescer a base de assinantes",
		Query:      "mercado de aplicativos de treino no Brasil",
	}
}

func TestRunCompletesAllSteps(t *testing.T) {
	llmStub := &stubLLM{answer: `{"panorama": "mercado aquecido", "lista": ["a", "b"]}`}
	searchStub := &stubSearch{results: []search.Result{
		{Title: "Mercado fitness cresce", URL: "https://example.com/a", Snippet: "dados de crescimento", Source: "stub-search"},
		{Title: "Apps de treino", URL: "https://example.com/b", Snippet: "comparativo", Source: "stub-search"},
	}}
	p := newTestPipeline(llmStub, searchStub)

	tracker := progress.NewTracker("s1")
	ctl := NewControl()

	var steps []StepResult
	sections, err := p.Run(context.Background(), fitnessInput(), nil, 1, tracker, ctl, func(r StepResult) {
		steps = append(steps, r)
	})
	require.NoError(t, err)
	require.Len(t, steps, TotalSteps)

	wantSections := []string{
		report.SectionPesquisaWeb,
		"sintese_mercado",
		report.SectionAvatar,
		report.SectionDrivers,
		report.SectionProvas,
		report.SectionAntiObjecao,
		report.SectionPrePitch,
		report.SectionConcorrencia,
		report.SectionPalavrasCh,
		report.SectionMetricas,
		report.SectionFunil,
		"predicoes_futuro",
		report.SectionInsights,
	}
	for _, key := range wantSections {
		assert.Contains(t, sections, key)
	}

	assert.Equal(t, 1, searchStub.calls, "research step should hit the engines once")
	assert.Equal(t, "consolidacao", steps[TotalSteps-1].Category)

	snap := tracker.Snapshot()
	assert.Equal(t, TotalSteps, snap.CurrentStep)
}

func TestRunFailsWithoutSegmentOrProduct(t *testing.T) {
	p := newTestPipeline(&stubLLM{answer: "{}"}, &stubSearch{})

	tracker := progress.NewTracker("s1")
	_, err := p.Run(context.Background(), Input{Query: "algo"}, nil, 1, tracker, NewControl(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segmento ou produto")
}

func TestRunResumesFromPriorSections(t *testing.T) {
	llmStub := &stubLLM{answer: `{"resumo": "ok"}`}
	searchStub := &stubSearch{}
	p := newTestPipeline(llmStub, searchStub)

	prior := map[string]interface{}{
		report.SectionPesquisaWeb: []interface{}{
			map[string]interface{}{"title": "t", "url": "u", "snippet": "s"},
		},
		"sintese_mercado": map[string]interface{}{"panorama": "existente"},
	}

	tracker := progress.NewTracker("s1")
	var steps []StepResult
	sections, err := p.Run(context.Background(), fitnessInput(), prior, 5, tracker, NewControl(), func(r StepResult) {
		steps = append(steps, r)
	})
	require.NoError(t, err)

	assert.Equal(t, 0, searchStub.calls, "research step must not rerun on resume")
	require.NotEmpty(t, steps)
	assert.Equal(t, 5, steps[0].Step)
	assert.Equal(t, map[string]interface{}{"panorama": "existente"}, sections["sintese_mercado"])
	assert.Contains(t, sections, report.SectionAvatar)
}

func TestRunStopsOnCancel(t *testing.T) {
	llmStub := &stubLLM{answer: "{}"}
	p := newTestPipeline(llmStub, &stubSearch{})

	ctl := NewControl()
	ctl.Cancel()

	tracker := progress.NewTracker("s1")
	_, err := p.Run(context.Background(), fitnessInput(), nil, 1, tracker, ctl, nil)
	require.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, 0, llmStub.calls)
}

func TestRunWrapsProviderErrors(t *testing.T) {
	llmStub := &stubLLM{err: fmt.Errorf("quota exceeded")}
	searchStub := &stubSearch{results: []search.Result{
		{Title: "t", URL: "https://example.com", Snippet: "s"},
	}}
	p := newTestPipeline(llmStub, searchStub)

	tracker := progress.NewTracker("s1")
	_, err := p.Run(context.Background(), fitnessInput(), nil, 1, tracker, NewControl(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 4")
}

func TestParseJSONPayload(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   interface{}
	}{
		{
			name:   "plain object",
			answer: `{"chave": "valor"}`,
			want:   map[string]interface{}{"chave": "valor"},
		},
		{
			name:   "fenced json",
			answer: "```json\n{\"chave\": \"valor\"}\n```",
			want:   map[string]interface{}{"chave": "valor"},
		},
		{
			name:   "object surrounded by prose",
			answer: "Segue a análise:\n{\"chave\": \"valor\"}\nEspero que ajude.",
			want:   map[string]interface{}{"chave": "valor"},
		},
		{
			name:   "unparseable falls back to raw text",
			answer: "resposta em texto livre",
			want:   map[string]interface{}{"texto": "resposta em texto livre"},
		},
		{
			name:   "broken json falls back to raw text",
			answer: `{"chave": `,
			want:   map[string]interface{}{"texto": `{"chave":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseJSONPayload(tt.answer))
		})
	}
}

func TestResearchDigest(t *testing.T) {
	empty := researchDigest(map[string]interface{}{})
	assert.Equal(t, "(sem resultados de pesquisa)", empty)

	digest := researchDigest(map[string]interface{}{
		report.SectionPesquisaWeb: []interface{}{
			map[string]interface{}{"title": "Titulo", "url": "https://example.com", "snippet": "Resumo"},
		},
	})
	assert.Contains(t, digest, "Titulo")
	assert.Contains(t, digest, "https://example.com")
	assert.Contains(t, digest, "Resumo")
}
