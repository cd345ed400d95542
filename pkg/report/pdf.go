package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFMeta is the cover information for an exported report.
type PDFMeta struct {
	SessionID   string
	Segment     string
	Product     string
	GeneratedAt time.Time
}

// BuildPDF renders the report sections into a printable document.
// Sections follow the declared order; values are flattened to plain text.
func BuildPDF(meta PDFMeta, sections map[string]interface{}) ([]byte, error) {
	renderer := NewRenderer()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Análise de Mercado", true)
	pdf.SetAutoPageBreak(true, 15)

	// Cover
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, tr("Análise de Mercado"), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Segmento: %s", meta.Segment)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Produto: %s", meta.Product)), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Sessão %s", meta.SessionID)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, meta.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	// Sections
	rendered := make(map[string]bool, len(sections))
	writeSection := func(key string) {
		value, ok := sections[key]
		if !ok || value == nil {
			return
		}
		body := renderer.PlainText(value)
		if body == "" {
			return
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 9, tr(TitleFor(key)), "", "L", false)
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(body), "", "L", false)
		rendered[key] = true
	}

	for _, key := range SectionOrder {
		writeSection(key)
	}
	extras := make([]string, 0)
	for key := range sections {
		if !rendered[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		writeSection(key)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// tr maps UTF-8 to the core-font cp1252 charset so accented pt-BR text
// survives the builtin Helvetica font.
var tr = func() func(string) string {
	pdf := fpdf.New("P", "mm", "A4", "")
	return pdf.UnicodeTranslatorFromDescriptor("")
}()
