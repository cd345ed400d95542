package report

import (
	"strings"
	"testing"
	"time"
)

func TestRenderValueShapes(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "string", value: "panorama do mercado", want: "<p>panorama do mercado</p>"},
		{name: "string escapes html", value: "<b>x</b>", want: "<p>&lt;b&gt;x&lt;/b&gt;</p>"},
		{name: "empty string skipped", value: "", want: ""},
		{name: "nil skipped", value: nil, want: ""},
		{name: "integer float", value: float64(42), want: "<p>42</p>"},
		{name: "fractional float", value: 3.14159, want: "<p>3.14</p>"},
		{name: "bool", value: true, want: "<p>true</p>"},
		{
			name:  "list of strings",
			value: []interface{}{"um", "dois"},
			want:  "<ul><li>um</li><li>dois</li></ul>",
		},
		{name: "empty list skipped", value: []interface{}{}, want: ""},
		{
			name:  "flat object",
			value: map[string]interface{}{"nome": "Ana", "idade": float64(30)},
			want:  "<dl><dt>Idade</dt><dd><p>30</p></dd><dt>Nome</dt><dd><p>Ana</p></dd></dl>",
		},
		{name: "empty object skipped", value: map[string]interface{}{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.renderValue(tt.value, 0); got != tt.want {
				t.Errorf("renderValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderValueDeepObjectFallsBackToJSON(t *testing.T) {
	r := NewRenderer()

	deep := map[string]interface{}{
		"nivel1": map[string]interface{}{
			"nivel2": map[string]interface{}{"chave": "valor"},
		},
	}

	got := r.renderValue(deep, 0)
	if !strings.Contains(got, "<pre>") {
		t.Errorf("deep structure should fall back to <pre> JSON, got %q", got)
	}
	if !strings.Contains(got, "chave") {
		t.Errorf("raw JSON fallback lost content: %q", got)
	}
}

func TestRenderOrderAndSkips(t *testing.T) {
	r := NewRenderer()

	sections := map[string]interface{}{
		"zzz_extra":         "extra ao final",
		SectionInsights:     []interface{}{"insight um"},
		SectionAvatar:       map[string]interface{}{"perfil": "empreendedor"},
		"aaa_extra":         "extras em ordem alfabética",
		SectionConcorrencia: nil,
		SectionFunil:        "",
	}

	out := r.Render(sections)

	wantKeys := []string{SectionAvatar, SectionInsights, "aaa_extra", "zzz_extra"}
	if len(out) != len(wantKeys) {
		t.Fatalf("len(out) = %d, want %d (%+v)", len(out), len(wantKeys), out)
	}
	for i, key := range wantKeys {
		if out[i].Key != key {
			t.Errorf("out[%d].Key = %q, want %q", i, out[i].Key, key)
		}
	}

	if out[0].Title != "Avatar Ultra-Detalhado" {
		t.Errorf("declared section title = %q", out[0].Title)
	}
	if out[2].Title != "Aaa Extra" {
		t.Errorf("derived title = %q, want humanized key", out[2].Title)
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "declared section", key: SectionDrivers, want: "Drivers Mentais Customizados"},
		{name: "underscore key humanized", key: "sintese_mercado", want: "Sintese Mercado"},
		{name: "dash key humanized", key: "pre-analise", want: "Pre Analise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFor(tt.key); got != tt.want {
				t.Errorf("TitleFor(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestPlainTextFlattening(t *testing.T) {
	r := NewRenderer()

	value := map[string]interface{}{
		"resumo": "mercado em expansão",
		"pontos": []interface{}{"ponto um", "ponto dois"},
	}

	got := r.PlainText(value)
	for _, want := range []string{"Resumo: mercado em expansão", "- ponto um", "- ponto dois"} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildPDFProducesDocument(t *testing.T) {
	sections := map[string]interface{}{
		SectionAvatar:   map[string]interface{}{"perfil": "gestor de academia"},
		SectionInsights: []interface{}{"priorizar retenção"},
	}

	out, err := BuildPDF(PDFMeta{
		SessionID:   "0c9f5c2e-5a7a-4a86-9d38-1d39f2a6f001",
		Segment:     "fitness",
		Product:     "aplicativo de treinos",
		GeneratedAt: time.Date(2026, 5, 10, 14, 30, 0, 0, time.UTC),
	}, sections)
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Errorf("output does not start with PDF header")
	}
	if len(out) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(out))
	}
}
