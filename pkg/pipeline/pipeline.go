package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-market-analysis-be/internal/constant"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/llm"
	"ai-market-analysis-be/pkg/progress"
	"ai-market-analysis-be/pkg/report"
	"ai-market-analysis-be/pkg/search"
)

// Input is the normalized analysis request.
type Input struct {
	Segment    string
	Product    string
	Audience   string
	Objectives string
	Context    string
	Query      string
}

// StepResult is emitted after each completed step so the caller can
// auto-save it. Sections carry report payloads keyed by section name;
// bookkeeping steps emit none.
type StepResult struct {
	Step     int
	Name     string
	Category string
	Sections map[string]interface{}
}

// TotalSteps mirrors progress.DefaultSteps.
var TotalSteps = len(progress.DefaultSteps)

// Pipeline runs the fixed 13-step market analysis. One Run per session,
// driven by a single goroutine; pause/resume/cancel arrive through the
// Control and take effect at step boundaries.
type Pipeline struct {
	ai         *ai.Manager
	search     *search.Manager
	searchOpts search.Options
	logger     logger.ILogger
}

func New(aiManager *ai.Manager, searchManager *search.Manager, searchOpts search.Options, log logger.ILogger) *Pipeline {
	return &Pipeline{
		ai:         aiManager,
		search:     searchManager,
		searchOpts: searchOpts,
		logger:     log,
	}
}

// ActiveProvider names the AI provider currently first in the fallback
// order, for tagging finished reports.
func (p *Pipeline) ActiveProvider() string {
	for _, status := range p.ai.Status() {
		if status.Available {
			return status.Name
		}
	}
	return ""
}

// Run executes steps startFrom..TotalSteps and returns the accumulated
// report sections. prior seeds sections already saved by an earlier run
// (the continue flow); pass nil and startFrom=1 for a fresh session.
func (p *Pipeline) Run(
	ctx context.Context,
	input Input,
	prior map[string]interface{},
	startFrom int,
	tracker *progress.Tracker,
	ctl *Control,
	onStep func(StepResult),
) (map[string]interface{}, error) {
	sections := make(map[string]interface{})
	for k, v := range prior {
		sections[k] = v
	}
	if startFrom < 1 {
		startFrom = 1
	}

	for step := startFrom; step <= TotalSteps; step++ {
		if err := ctl.Checkpoint(ctx); err != nil {
			return sections, err
		}
		if err := ctx.Err(); err != nil {
			return sections, err
		}

		name := tracker.StepName(step)
		tracker.Update(step, name, "")
		p.logger.Info("Pipeline", "Step started", map[string]interface{}{
			"step": step,
			"name": name,
		})

		category, stepSections, err := p.runStep(ctx, step, input, sections)
		if err != nil {
			return sections, fmt.Errorf("step %d (%s): %w", step, name, err)
		}

		for k, v := range stepSections {
			sections[k] = v
		}
		if onStep != nil {
			onStep(StepResult{
				Step:     step,
				Name:     name,
				Category: category,
				Sections: stepSections,
			})
		}
	}

	return sections, nil
}

func (p *Pipeline) runStep(ctx context.Context, step int, input Input, sections map[string]interface{}) (string, map[string]interface{}, error) {
	switch step {
	case 1:
		if input.Segment == "" && input.Product == "" {
			return "", nil, fmt.Errorf("segmento ou produto é obrigatório")
		}
		return "analise_completa", nil, nil

	case 2:
		out, err := p.stepResearch(ctx, input)
		return "pesquisa_web", out, err

	case 3:
		// Digest is recomputed from the pesquisa_web section on demand,
		// so resumed sessions rebuild it for free.
		return "pesquisa_web", nil, nil

	case 4:
		return p.aiSection(ctx, input, sections, "sintese_mercado",
			"Sintetize o estado atual deste mercado em um objeto JSON com as chaves "+
				`"panorama", "tamanho_estimado", "principais_players" (lista) e "barreiras_entrada" (lista).`)

	case 5:
		return p.aiSection(ctx, input, sections, report.SectionAvatar, constant.PromptAvatar)

	case 6:
		return p.aiSection(ctx, input, sections, report.SectionDrivers, constant.PromptDrivers)

	case 7:
		return p.aiSection(ctx, input, sections, report.SectionProvas, constant.PromptProvas)

	case 8:
		return p.aiSection(ctx, input, sections, report.SectionAntiObjecao, constant.PromptAntiObjecao)

	case 9:
		return p.aiSection(ctx, input, sections, report.SectionPrePitch, constant.PromptPrePitch)

	case 10:
		return p.aiSections(ctx, input, sections, map[string]string{
			report.SectionConcorrencia: constant.PromptConcorrencia,
			report.SectionPalavrasCh:   constant.PromptPalavrasChave,
		})

	case 11:
		return p.aiSections(ctx, input, sections, map[string]string{
			report.SectionMetricas: constant.PromptMetricas,
			report.SectionFunil:    constant.PromptFunil,
		})

	case 12:
		return p.aiSection(ctx, input, sections, "predicoes_futuro", constant.PromptPredicoes)

	case 13:
		category, out, err := p.aiSection(ctx, input, sections, report.SectionInsights, constant.PromptInsights)
		if err != nil {
			return category, out, err
		}
		return "consolidacao", out, nil

	default:
		return "", nil, fmt.Errorf("unknown step %d", step)
	}
}

func (p *Pipeline) stepResearch(ctx context.Context, input Input) (map[string]interface{}, error) {
	results, err := p.search.MultiSearch(ctx, input.Query, p.searchOpts)
	if err != nil {
		return nil, err
	}

	items := make([]interface{}, 0, len(results))
	for _, r := range results {
		items = append(items, map[string]interface{}{
			"title":   r.Title,
			"url":     r.URL,
			"snippet": r.Snippet,
			"source":  r.Source,
		})
	}

	return map[string]interface{}{
		report.SectionPesquisaWeb: items,
	}, nil
}

// aiSection generates one report section through the provider chain.
func (p *Pipeline) aiSection(ctx context.Context, input Input, sections map[string]interface{}, sectionKey, prompt string) (string, map[string]interface{}, error) {
	payload, err := p.generate(ctx, input, sections, prompt)
	if err != nil {
		return "analise_ia", nil, err
	}
	return "analise_ia", map[string]interface{}{sectionKey: payload}, nil
}

// aiSections generates multiple sections within the same step.
func (p *Pipeline) aiSections(ctx context.Context, input Input, sections map[string]interface{}, prompts map[string]string) (string, map[string]interface{}, error) {
	out := make(map[string]interface{}, len(prompts))
	for sectionKey, prompt := range prompts {
		payload, err := p.generate(ctx, input, sections, prompt)
		if err != nil {
			return "analise_ia", nil, err
		}
		out[sectionKey] = payload
	}
	return "analise_ia", out, nil
}

func (p *Pipeline) generate(ctx context.Context, input Input, sections map[string]interface{}, prompt string) (interface{}, error) {
	contextBlock := fmt.Sprintf(constant.PromptContext,
		input.Segment, input.Product, input.Audience, input.Objectives, input.Context,
		researchDigest(sections),
	)

	answer, err := p.ai.Chat(ctx, []llm.Message{
		{Role: "system", Content: contextBlock},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.7))
	if err != nil {
		return nil, err
	}

	return parseJSONPayload(answer), nil
}

// parseJSONPayload extracts the JSON object from a model answer, tolerating
// markdown fences and prose around it. Unparseable answers are preserved as
// raw text so the renderer's fallback still shows them.
func parseJSONPayload(answer string) interface{} {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &obj); err == nil {
			return obj
		}
	}

	return map[string]interface{}{"texto": strings.TrimSpace(answer)}
}

const maxDigestChars = 8000

// researchDigest folds the collected research into a bounded text context
// for the AI steps.
func researchDigest(sections map[string]interface{}) string {
	raw, ok := sections[report.SectionPesquisaWeb].([]interface{})
	if !ok {
		return "(sem resultados de pesquisa)"
	}

	var b strings.Builder
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		snippet, _ := m["snippet"].(string)
		url, _ := m["url"].(string)
		fmt.Fprintf(&b, "- %s (%s): %s\n", title, url, snippet)
		if b.Len() > maxDigestChars {
			break
		}
	}
	if b.Len() == 0 {
		return "(sem resultados de pesquisa)"
	}
	return b.String()
}
