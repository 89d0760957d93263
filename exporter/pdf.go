// Package exporter turns generated text into the files and previews offered to the user.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// ErrNotLatin1 is returned when the title or body contains a character the
// single-byte PDF core fonts cannot represent.
var ErrNotLatin1 = errors.New("text is not representable in ISO-8859-1")

// fixedCreationDate replaces the wall clock in document info so identical input renders identical bytes.
var fixedCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFLayout holds the fixed formatting rules of the exported document.
type PDFLayout struct {
	Font           string
	TitleSize      float64
	BodySize       float64
	TitleCellWidth float64
	LineHeight     float64
	BottomMargin   float64
	TitleSpacing   float64
	Orientation    string
	Unit           string
	PageSize       string
	BodyAlign      string
}

// DefaultPDFLayout: bold 16pt centered title, 12pt justified body, page break at 15 units.
var DefaultPDFLayout = PDFLayout{
	Font:           "Arial",
	TitleSize:      16,
	BodySize:       12,
	TitleCellWidth: 200,
	LineHeight:     10,
	BottomMargin:   15,
	TitleSpacing:   10,
	Orientation:    "P",
	Unit:           "mm",
	PageSize:       "A4",
	BodyAlign:      "J",
}

// PDFExporter renders one title and one body paragraph into a paginated PDF.
type PDFExporter struct {
	layout PDFLayout
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{layout: DefaultPDFLayout}
}

func NewPDFExporterWithLayout(layout PDFLayout) *PDFExporter {
	return &PDFExporter{layout: layout}
}

func (e *PDFExporter) Render(title, body string) ([]byte, error) {
	latinTitle, err := toLatin1(title)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	latinBody, err := toLatin1(body)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}

	l := e.layout
	pdf := fpdf.New(l.Orientation, l.Unit, l.PageSize, "")
	pdf.SetCreationDate(fixedCreationDate)
	pdf.SetModificationDate(fixedCreationDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(true, l.BottomMargin)
	pdf.AddPage()

	pdf.SetFont(l.Font, "B", l.TitleSize)
	pdf.CellFormat(l.TitleCellWidth, l.LineHeight, latinTitle, "", 1, "C", false, 0, "")

	pdf.Ln(l.TitleSpacing)
	pdf.SetFont(l.Font, "", l.BodySize)
	pdf.MultiCell(0, l.LineHeight, latinBody, "", l.BodyAlign, false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// toLatin1 re-encodes s so each character is one byte, as the core fonts expect.
func toLatin1(s string) (string, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotLatin1, err)
	}
	return out, nil
}
