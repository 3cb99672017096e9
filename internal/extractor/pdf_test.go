package extractor

import (
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
)

// testdata/two_pages.pdf: A4 pages whose MediaBox is declared only on the
// page tree root. Page 1 has "Q1 first" at baseline 800 and "body one" at
// baseline 400, page 2 has "Q2 second" at baseline 700, all in 12pt.
const twoPagesFixture = "testdata/two_pages.pdf"

// ========== OpenPDF ==========

func TestOpenPDF_InheritedMediaBox(t *testing.T) {
	doc, err := OpenPDF(twoPagesFixture)
	if err != nil {
		t.Fatalf("OpenPDF: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}
	for i, p := range doc.Pages {
		if p.Width != 595 || p.Height != 842 || p.OriginX != 0 || p.OriginY != 0 {
			t.Errorf("page %d box = (%v,%v %vx%v), want (0,0 595x842)", i, p.OriginX, p.OriginY, p.Width, p.Height)
		}
	}
	if doc.Name != "two_pages.pdf" {
		t.Errorf("Name = %q", doc.Name)
	}
	if len(doc.Digest) != 16 {
		t.Errorf("Digest = %q, want 16 hex digits", doc.Digest)
	}
}

func TestOpenPDF_TopDownLineOffsets(t *testing.T) {
	doc, err := OpenPDF(twoPagesFixture)
	if err != nil {
		t.Fatalf("OpenPDF: %v", err)
	}

	want := [][]Line{
		{
			{Page: 0, Top: 30, Text: "Q1 first"},
			{Page: 0, Top: 430, Text: "body one"},
		},
		{
			{Page: 1, Top: 130, Text: "Q2 second"},
		},
	}
	for i, lines := range want {
		got := doc.Pages[i].Lines
		if len(got) != len(lines) {
			t.Fatalf("page %d: expected %d lines, got %+v", i, len(lines), got)
		}
		for j := range lines {
			if got[j] != lines[j] {
				t.Errorf("page %d line %d = %+v, want %+v", i, j, got[j], lines[j])
			}
		}
	}
}

func TestOpenPDF_SegmentsFollowLineOffsets(t *testing.T) {
	doc, err := OpenPDF(twoPagesFixture)
	if err != nil {
		t.Fatalf("OpenPDF: %v", err)
	}
	markers := []Marker{{Page: 0, Y: 30}, {Page: 1, Y: 130}}
	qs := ExtractQuestions(doc, BuildSegments(doc, markers))

	if qs[0].Text != "Q1 first\nbody one" {
		t.Errorf("question 1 text = %q", qs[0].Text)
	}
	if qs[1].Text != "Q2 second" {
		t.Errorf("question 2 text = %q", qs[1].Text)
	}
}

func TestOpenPDF_Missing(t *testing.T) {
	if _, err := OpenPDF(filepath.Join(t.TempDir(), "none.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

// ========== groupLines ==========

func glyph(s string, x, y, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, FontSize: size}
}

func TestGroupLines_KeepsSubscriptsAndSuperscriptsOnTheirLine(t *testing.T) {
	page := Page{Width: 595, Height: 842}
	texts := []pdf.Text{
		glyph("H", 72, 700, 12),
		glyph("2", 81, 697, 8),
		glyph("O", 86, 700, 12),
		glyph("1", 72, 680, 12),
		glyph("0", 79, 680, 12),
		glyph("-", 86, 686, 8),
		glyph("3", 90, 686, 8),
	}

	lines := groupLines(texts, page, 0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", lines)
	}
	if lines[0].Text != "H2O" || lines[0].Top != 130 {
		t.Errorf("line 1 = %+v, want H2O at 130", lines[0])
	}
	if lines[1].Text != "10-3" || lines[1].Top != 148 {
		t.Errorf("line 2 = %+v, want 10-3 at 148 (superscript raises the line top)", lines[1])
	}
}

func TestGroupLines_TightLeadingStaysSeparate(t *testing.T) {
	page := Page{Width: 595, Height: 842}
	texts := []pdf.Text{
		glyph("b", 72, 690, 12),
		glyph("a", 72, 700, 12),
	}
	lines := groupLines(texts, page, 3)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", lines)
	}
	if lines[0].Text != "a" || lines[1].Text != "b" || lines[0].Page != 3 {
		t.Errorf("unexpected order: %+v", lines)
	}
}
