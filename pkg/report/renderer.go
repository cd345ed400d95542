package report

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"
)

// Renderer maps opaque report sections into HTML fragments. Shapes:
// arrays render as lists, objects as key/value blocks (recursing one level,
// then falling back to raw JSON), scalars as plain text. Sections that are
// nil or unrenderable are skipped, never fatal.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderedSection is one report block ready for the client.
type RenderedSection struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Render produces sections in the declared order; undeclared sections follow
// sorted by key so output is deterministic.
func (r *Renderer) Render(sections map[string]interface{}) []RenderedSection {
	out := make([]RenderedSection, 0, len(sections))
	rendered := make(map[string]bool, len(sections))

	appendSection := func(key string) {
		value, ok := sections[key]
		if !ok || value == nil {
			return
		}
		htmlBody := r.renderValue(value, 0)
		if htmlBody == "" {
			return
		}
		out = append(out, RenderedSection{
			Key:   key,
			Title: TitleFor(key),
			HTML:  htmlBody,
		})
		rendered[key] = true
	}

	for _, key := range SectionOrder {
		appendSection(key)
	}

	extras := make([]string, 0)
	for key := range sections {
		if !rendered[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		appendSection(key)
	}

	return out
}

// renderValue recurses one level into objects; deeper structures fall back
// to pretty-printed JSON inside <pre>.
func (r *Renderer) renderValue(value interface{}, depth int) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if v == "" {
			return ""
		}
		return "<p>" + html.EscapeString(v) + "</p>"
	case bool:
		return fmt.Sprintf("<p>%t</p>", v)
	case float64:
		return "<p>" + formatNumber(v) + "</p>"
	case json.Number:
		return "<p>" + html.EscapeString(v.String()) + "</p>"
	case []interface{}:
		return r.renderList(v, depth)
	case map[string]interface{}:
		if depth >= 1 {
			return rawJSONBlock(v)
		}
		return r.renderObject(v, depth)
	default:
		return rawJSONBlock(v)
	}
}

func (r *Renderer) renderList(items []interface{}, depth int) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		switch v := item.(type) {
		case string:
			b.WriteString("<li>" + html.EscapeString(v) + "</li>")
		case float64:
			b.WriteString("<li>" + formatNumber(v) + "</li>")
		case bool:
			fmt.Fprintf(&b, "<li>%t</li>", v)
		case map[string]interface{}:
			if depth >= 1 {
				b.WriteString("<li>" + rawJSONBlock(v) + "</li>")
			} else {
				b.WriteString("<li>" + r.renderObject(v, depth+1) + "</li>")
			}
		default:
			b.WriteString("<li>" + rawJSONBlock(v) + "</li>")
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

func (r *Renderer) renderObject(obj map[string]interface{}, depth int) string {
	if len(obj) == 0 {
		return ""
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<dl>`)
	for _, k := range keys {
		value := obj[k]
		if value == nil {
			continue
		}
		b.WriteString("<dt>" + html.EscapeString(humanize(k)) + "</dt>")
		b.WriteString("<dd>" + r.renderValue(value, depth+1) + "</dd>")
	}
	b.WriteString("</dl>")
	return b.String()
}

// PlainText flattens a section value for text surfaces (PDF, email).
func (r *Renderer) PlainText(value interface{}) string {
	var b strings.Builder
	writePlain(&b, value, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writePlain(b *strings.Builder, value interface{}, indent int) {
	pad := strings.Repeat("  ", indent)
	switch v := value.(type) {
	case nil:
	case string:
		b.WriteString(pad + v + "\n")
	case bool:
		fmt.Fprintf(b, "%s%t\n", pad, v)
	case float64:
		b.WriteString(pad + formatNumber(v) + "\n")
	case []interface{}:
		for _, item := range v {
			switch iv := item.(type) {
			case string:
				b.WriteString(pad + "- " + iv + "\n")
			case float64:
				b.WriteString(pad + "- " + formatNumber(iv) + "\n")
			default:
				writePlain(b, item, indent)
			}
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v[k] == nil {
				continue
			}
			switch v[k].(type) {
			case string, float64, bool:
				b.WriteString(pad + humanize(k) + ": ")
				inline := strings.TrimSpace(NewRenderer().PlainText(v[k]))
				b.WriteString(inline + "\n")
			default:
				b.WriteString(pad + humanize(k) + ":\n")
				writePlain(b, v[k], indent+1)
			}
		}
	default:
		raw, err := json.Marshal(v)
		if err == nil {
			b.WriteString(pad + string(raw) + "\n")
		}
	}
}

func rawJSONBlock(value interface{}) string {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	return "<pre>" + html.EscapeString(string(raw)) + "</pre>"
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
