package report

// Section kinds declared by the analysis pipeline. The renderer keys off
// these; anything else falls back to the generic shape-based rendering.
const (
	SectionAvatar       = "avatar"
	SectionDrivers      = "drivers_mentais"
	SectionProvas       = "provas_visuais"
	SectionAntiObjecao  = "anti_objecao"
	SectionPrePitch     = "pre_pitch"
	SectionConcorrencia = "concorrencia"
	SectionPalavrasCh   = "palavras_chave"
	SectionFunil        = "funil_vendas"
	SectionMetricas     = "metricas"
	SectionInsights     = "insights"
	SectionPesquisaWeb  = "pesquisa_web"
)

// sectionTitles maps a declared kind to its display heading. Order in
// SectionOrder controls report layout.
var sectionTitles = map[string]string{
	SectionAvatar:       "Avatar Ultra-Detalhado",
	SectionDrivers:      "Drivers Mentais Customizados",
	SectionProvas:       "Provas Visuais Instantâneas",
	SectionAntiObjecao:  "Sistema Anti-Objeção",
	SectionPrePitch:     "Pré-Pitch Invisível",
	SectionConcorrencia: "Análise de Concorrência",
	SectionPalavrasCh:   "Palavras-Chave Estratégicas",
	SectionFunil:        "Funil de Vendas",
	SectionMetricas:     "Métricas e Projeções",
	SectionInsights:     "Insights Exclusivos",
	SectionPesquisaWeb:  "Pesquisa Web",
}

// SectionOrder is the declared rendering order. Sections the pipeline emits
// that are not listed here render after these, sorted by name.
var SectionOrder = []string{
	SectionAvatar,
	SectionDrivers,
	SectionProvas,
	SectionAntiObjecao,
	SectionPrePitch,
	SectionConcorrencia,
	SectionPalavrasCh,
	SectionFunil,
	SectionMetricas,
	SectionInsights,
	SectionPesquisaWeb,
}

// TitleFor returns the display heading for a section, deriving one from the
// raw key when the kind is not declared.
func TitleFor(name string) string {
	if title, ok := sectionTitles[name]; ok {
		return title
	}
	return humanize(name)
}

func humanize(key string) string {
	out := make([]rune, 0, len(key))
	upper := true
	for _, r := range key {
		if r == '_' || r == '-' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper {
			if r >= 'a' && r <= 'z' {
				r = r - 'a' + 'A'
			}
			upper = false
		}
		out = append(out, r)
	}
	return string(out)
}
