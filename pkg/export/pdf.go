// Package export renders dashboard report tables as PDF documents.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// Table is a titled grid of already formatted cells.
type Table struct {
	Title       string
	Subtitle    string
	Headers     []string
	Rows        [][]string
	GeneratedAt time.Time
}

const (
	pageWidth = 277.0 // A4 landscape minus 10mm margins
	rowHeight = 7.0
)

func RenderPDF(t *Table) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("report %q has no columns", t.Title)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	generated := t.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	line := "Generated " + generated.UTC().Format("2006-01-02 15:04 MST")
	if t.Subtitle != "" {
		line = t.Subtitle + "  |  " + line
	}
	pdf.Cell(0, 6, line)
	pdf.Ln(10)

	colWidth := pageWidth / float64(len(t.Headers))
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 236, 245)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, rowHeight, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	if len(t.Rows) == 0 {
		pdf.CellFormat(pageWidth, rowHeight, "No data", "1", 1, "C", false, 0, "")
	}

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom-5 {
			pdf.AddPage()
			header()
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
