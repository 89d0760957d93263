package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderProducesPDF(t *testing.T) {
	bodies := []string{
		"",
		"Short body.",
		"Line one\nLine two\n\nParagraph with punctuation: !@#$%^&*()[]{}<>?",
		strings.Repeat("Renewable energy keeps getting cheaper. ", 400), // several pages
	}
	exp := NewPDFExporter()
	for _, body := range bodies {
		out, err := exp.Render("Blog Post on renewable energy", body)
		if err != nil {
			t.Fatalf("Render(%d bytes): %v", len(body), err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Errorf("output does not start with the PDF header: %q", out[:min(len(out), 16)])
		}
		if !bytes.Contains(out, []byte("%%EOF")) {
			t.Errorf("output has no EOF marker")
		}
	}
}

func TestRenderPaginates(t *testing.T) {
	exp := NewPDFExporter()
	short, err := exp.Render("t", "one line")
	if err != nil {
		t.Fatal(err)
	}
	long, err := exp.Render("t", strings.Repeat("word ", 5000))
	if err != nil {
		t.Fatal(err)
	}
	if n := bytes.Count(short, []byte("/Type /Page\n")); n != 1 {
		t.Errorf("short document has %d pages, want 1", n)
	}
	if n := bytes.Count(long, []byte("/Type /Page\n")); n < 2 {
		t.Errorf("long document has %d pages, want several", n)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	exp := NewPDFExporter()
	a, err := exp.Render("Product Description on kettles", "Boils fast.")
	if err != nil {
		t.Fatal(err)
	}
	b, err := exp.Render("Product Description on kettles", "Boils fast.")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical input rendered to different bytes")
	}
}

func TestRenderAcceptsLatin1(t *testing.T) {
	if _, err := NewPDFExporter().Render("Café on crème brûlée", "Déjà vu, naïve façade. £5 ©"); err != nil {
		t.Fatalf("Latin-1 text rejected: %v", err)
	}
}

func TestRenderRejectsNonLatin1(t *testing.T) {
	tests := []struct {
		title, body string
	}{
		{"Blog Post on energy", "Costs dropped 20€ per unit"},
		{"Blog Post on 日本", "body"},
		{"Social Media Post on joy", "so happy 🎉"},
	}
	for _, tt := range tests {
		_, err := NewPDFExporter().Render(tt.title, tt.body)
		if !errors.Is(err, ErrNotLatin1) {
			t.Errorf("Render(%q, %q) err = %v, want ErrNotLatin1", tt.title, tt.body, err)
		}
	}
}

func TestRenderWithCustomLayout(t *testing.T) {
	a4, err := NewPDFExporter().Render("t", "body")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(a4, []byte("/MediaBox [0 0 595.28 841.89]")) {
		t.Error("default layout is not A4")
	}

	layout := DefaultPDFLayout
	layout.PageSize = "Letter"
	letter, err := NewPDFExporterWithLayout(layout).Render("t", "body")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(letter, []byte("/MediaBox [0 0 612.00 792.00]")) {
		t.Error("custom layout did not switch the page size to Letter")
	}
}
