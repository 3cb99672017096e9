package extractor

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/minio/highwayhash"
)

var digestKey = []byte("examsearch-source-digest-key-v01")

// Line is one visual text line of a page. Top is measured from the top
// of the page, growing downwards.
type Line struct {
	Page int     `json:"page"`
	Top  float64 `json:"top"`
	Text string  `json:"text"`
}

// Page holds the geometry and text lines of a single page. OriginX and
// OriginY are the lower-left corner of the media box in PDF user space.
type Page struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	Lines   []Line  `json:"lines"`
}

// Document is a fully loaded source document. Pages are addressed by
// their zero-based index.
type Document struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Digest string `json:"digest"`
	Pages  []Page `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageHeight returns the height of page i, or 0 when i is out of range.
func (d *Document) PageHeight(i int) float64 {
	if i < 0 || i >= len(d.Pages) {
		return 0
	}
	return d.Pages[i].Height
}

// OpenPDF reads a PDF into memory, decomposing every page into lines
// with their vertical position.
func OpenPDF(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	digest, err := Digest(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:   filePath,
		Name:   filepath.Base(filePath),
		Digest: digest,
	}

	numPages := r.NumPage()
	for pageIndex := 1; pageIndex <= numPages; pageIndex++ {
		p := r.Page(pageIndex)
		page, err := readPage(p, pageIndex-1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageIndex, err)
		}
		doc.Pages = append(doc.Pages, page)
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no pages in %s", doc.Name)
	}
	return doc, nil
}

// Digest returns a hex fingerprint of the raw document bytes.
func Digest(data []byte) (string, error) {
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func readPage(p pdf.Page, index int) (page Page, err error) {
	if p.V.IsNull() {
		return Page{}, fmt.Errorf("missing page object")
	}

	page.OriginX, page.OriginY, page.Width, page.Height = mediaBox(p.V)

	// The content interpreter panics on malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	page.Lines = groupLines(p.Content().Text, page, index)
	return page, nil
}

// mediaBox resolves the (possibly inherited) MediaBox of a page. US
// Letter is assumed when none is declared anywhere in the tree.
func mediaBox(v pdf.Value) (x, y, w, h float64) {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		box := node.Key("MediaBox")
		if box.Len() == 4 {
			x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
			x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
			return math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1 - x0), math.Abs(y1 - y0)
		}
	}
	return 0, 0, 612, 792
}

// groupLines merges glyphs into visual lines, ordered top to bottom and
// left to right. A glyph joins a row when its vertical extent overlaps the
// row's dominant glyph by more than half of the smaller height, so
// subscripts and superscripts stay on the line they belong to.
func groupLines(texts []pdf.Text, page Page, index int) []Line {
	type row struct {
		baseline float64 // of the largest glyph
		fontSize float64
		ceiling  float64 // highest glyph top in user space
		glyphs   []pdf.Text
	}

	glyphs := make([]pdf.Text, len(texts))
	copy(glyphs, texts)
	// Full-size glyphs first, so rows are anchored on body text.
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].FontSize != glyphs[j].FontSize {
			return glyphs[i].FontSize > glyphs[j].FontSize
		}
		return glyphs[i].Y > glyphs[j].Y
	})

	var rows []*row
	for _, g := range glyphs {
		var target *row
		for _, r := range rows {
			if overlapsRow(g, r.baseline, r.fontSize) {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{baseline: g.Y, fontSize: g.FontSize, ceiling: g.Y + g.FontSize}
			rows = append(rows, target)
		}
		if top := g.Y + g.FontSize; top > target.ceiling {
			target.ceiling = top
		}
		target.glyphs = append(target.glyphs, g)
	}

	pageTop := page.OriginY + page.Height
	var lines []Line
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })
		var sb strings.Builder
		for _, g := range r.glyphs {
			sb.WriteString(g.S)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		y := pageTop - r.ceiling
		if y < 0 {
			y = 0
		}
		lines = append(lines, Line{Page: index, Top: y, Text: text})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Top != lines[j].Top {
			return lines[i].Top < lines[j].Top
		}
		return lines[i].Text < lines[j].Text
	})
	return lines
}

func overlapsRow(g pdf.Text, baseline, size float64) bool {
	lo := math.Max(g.Y, baseline)
	hi := math.Min(g.Y+g.FontSize, baseline+size)
	limit := 0.5 * math.Min(g.FontSize, size)
	if limit <= 0 {
		// Zero-size glyphs only join a row on its exact baseline.
		return math.Round(g.Y) == math.Round(baseline)
	}
	return hi-lo > limit
}
