// Package exporter renders question segments into standalone PDF files
// and owns the on-disk layout of those files.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"examsearch/internal/extractor"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// TopPadding is how far above a segment's start the crop box reaches, so
// glyph ascenders of the marker line are not cut off.
const TopPadding = 2.0

var (
	// ErrInvalidPath is returned for empty or malformed sub-document paths.
	ErrInvalidPath = errors.New("invalid path")
	// ErrOutsideRoot is returned when a path resolves outside the output root.
	ErrOutsideRoot = errors.New("path escapes output root")
	// ErrNothingToExport is returned when every segment of a question is empty.
	ErrNothingToExport = errors.New("no non-empty segments to export")
)

// CropBox is a crop rectangle in top-down page coordinates.
type CropBox struct {
	Page   int
	Top    float64
	Bottom float64
}

// Height returns the height of the box.
func (b CropBox) Height() float64 {
	return b.Bottom - b.Top
}

// CropBoxes converts segments into padded crop boxes clamped to the page,
// dropping boxes with no height.
func CropBoxes(doc *extractor.Document, segs []extractor.Segment) []CropBox {
	var boxes []CropBox
	for _, seg := range segs {
		h := doc.PageHeight(seg.Page)
		top := seg.YStart - TopPadding
		if top < 0 {
			top = 0
		}
		bottom := seg.YEnd
		if bottom > h {
			bottom = h
		}
		b := CropBox{Page: seg.Page, Top: top, Bottom: bottom}
		if b.Height() <= 0 {
			continue
		}
		boxes = append(boxes, b)
	}
	return boxes
}

// PDFExporter writes cropped copies of source pages with pdfcpu.
type PDFExporter struct {
	doc  *extractor.Document
	src  []byte
	conf *model.Configuration
}

// NewPDFExporter loads the source file of doc once for repeated exports.
func NewPDFExporter(doc *extractor.Document) (*PDFExporter, error) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source pdf: %w", err)
	}
	return &PDFExporter{
		doc:  doc,
		src:  data,
		conf: model.NewDefaultConfiguration(),
	}, nil
}

// Export writes one document with a page per non-empty segment, each
// cropped to the segment band. An existing file at outPath is replaced;
// pdfcpu stamps a fresh ModDate and file ID on every write, so reruns
// reproduce the pages and crop boxes but not the exact bytes.
func (e *PDFExporter) Export(segs []extractor.Segment, outPath string) error {
	boxes := CropBoxes(e.doc, segs)
	if len(boxes) == 0 {
		return ErrNothingToExport
	}

	parts := make([]io.ReadSeeker, 0, len(boxes))
	for _, b := range boxes {
		part, err := e.cropPage(b)
		if err != nil {
			return fmt.Errorf("page %d: %w", b.Page+1, err)
		}
		parts = append(parts, bytes.NewReader(part))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	var out bytes.Buffer
	if len(parts) == 1 {
		if _, err := io.Copy(&out, parts[0]); err != nil {
			return err
		}
	} else if err := api.MergeRaw(parts, &out, false, e.conf); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}

// cropPage extracts a single page and sets its crop box to b.
func (e *PDFExporter) cropPage(b CropBox) ([]byte, error) {
	pageNr := []string{strconv.Itoa(b.Page + 1)}

	var single bytes.Buffer
	if err := api.Collect(bytes.NewReader(e.src), &single, pageNr, e.conf); err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	box, err := api.Box(boxSpec(e.doc.Pages[b.Page], b), types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("crop box: %w", err)
	}

	var cropped bytes.Buffer
	if err := api.Crop(bytes.NewReader(single.Bytes()), &cropped, nil, box, e.conf); err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}
	return cropped.Bytes(), nil
}

// boxSpec renders b in PDF user space ("[llx lly urx ury]").
func boxSpec(p extractor.Page, b CropBox) string {
	top := p.OriginY + p.Height
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]",
		p.OriginX, top-b.Bottom, p.OriginX+p.Width, top-b.Top)
}

// FileName is the sub-document file name for a problem id.
func FileName(id string) string {
	return id + ".pdf"
}

// RelPath is the slash-separated path of a sub-document below the root,
// as stored in the corpus.
func RelPath(source, id string) string {
	return path.Join(source, FileName(id))
}

// OutputPath is where the sub-document for id is written.
func OutputPath(root, source, id string) string {
	return filepath.Join(root, filepath.FromSlash(RelPath(source, id)))
}

// Resolve maps a corpus-relative path to a file path under root. Any path
// that would leave root is rejected.
func Resolve(root, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" || strings.ContainsRune(rel, 0) {
		return "", ErrInvalidPath
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" {
		return "", ErrOutsideRoot
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(absRoot, cleaned)
	r, err := filepath.Rel(absRoot, full)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
