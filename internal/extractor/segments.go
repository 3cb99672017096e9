package extractor

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrNoMarkers is returned when a document contains no question markers
// and therefore cannot be segmented.
var ErrNoMarkers = errors.New("no question markers found")

// questionLineRe matches a line opening with the question glyph directly
// followed by a half-width or full-width digit.
var questionLineRe = regexp.MustCompile(`^問[0-9０-９]`)

// Marker is a detected line that starts a new question.
type Marker struct {
	Page int     `json:"page"`
	Y    float64 `json:"y0"`
	Text string  `json:"text"`
}

// Segment is a vertical band [YStart, YEnd) of one page.
type Segment struct {
	Page   int     `json:"page"`
	YStart float64 `json:"y0"`
	YEnd   float64 `json:"y1"`
}

// Empty reports whether the band has no height.
func (s Segment) Empty() bool {
	return s.YStart >= s.YEnd
}

// Question is one question unit: its marker and the bands it owns, in
// reading order. Text fields are filled by ExtractQuestions.
type Question struct {
	Ordinal  int       `json:"index"`
	Marker   Marker    `json:"marker"`
	Segments []Segment `json:"segments"`
	RawText  string    `json:"-"`
	Text     string    `json:"text"`
}

// DetectMarkers scans every line of the document for question markers
// and returns them ordered by page and vertical offset.
func DetectMarkers(doc *Document) ([]Marker, error) {
	var markers []Marker
	for pageIndex, page := range doc.Pages {
		for _, line := range page.Lines {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			if questionLineRe.MatchString(text) {
				markers = append(markers, Marker{Page: pageIndex, Y: line.Top, Text: text})
			}
		}
	}

	if len(markers) == 0 {
		return nil, ErrNoMarkers
	}

	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].Page != markers[j].Page {
			return markers[i].Page < markers[j].Page
		}
		return markers[i].Y < markers[j].Y
	})
	return markers, nil
}

// BuildSegments assigns each marker the region up to the next marker.
// A question whose successor lies on a later page owns the tail of its
// own page, every page in between, and the head of the successor's page.
// The last question runs to the end of the document.
func BuildSegments(doc *Document, markers []Marker) []Question {
	questions := make([]Question, 0, len(markers))
	for i, m := range markers {
		var segs []Segment
		switch {
		case i+1 < len(markers) && markers[i+1].Page == m.Page:
			segs = append(segs, Segment{Page: m.Page, YStart: m.Y, YEnd: markers[i+1].Y})
		case i+1 < len(markers):
			next := markers[i+1]
			segs = append(segs, Segment{Page: m.Page, YStart: m.Y, YEnd: doc.PageHeight(m.Page)})
			for p := m.Page + 1; p < next.Page; p++ {
				segs = append(segs, fullPage(doc, p))
			}
			segs = append(segs, Segment{Page: next.Page, YStart: 0, YEnd: next.Y})
		default:
			segs = append(segs, Segment{Page: m.Page, YStart: m.Y, YEnd: doc.PageHeight(m.Page)})
			for p := m.Page + 1; p < doc.PageCount(); p++ {
				segs = append(segs, fullPage(doc, p))
			}
		}

		questions = append(questions, Question{
			Ordinal:  i + 1,
			Marker:   m,
			Segments: segs,
		})
	}
	return questions
}

func fullPage(doc *Document, p int) Segment {
	return Segment{Page: p, YStart: 0, YEnd: doc.PageHeight(p)}
}

// SegmentText returns the lines of the segment's page whose top lies
// inside the band, one per row. Empty bands yield "".
func (d *Document) SegmentText(seg Segment) string {
	if seg.Empty() || seg.Page < 0 || seg.Page >= len(d.Pages) {
		return ""
	}
	var rows []string
	for _, line := range d.Pages[seg.Page].Lines {
		if line.Top >= seg.YStart && line.Top < seg.YEnd {
			rows = append(rows, line.Text)
		}
	}
	return strings.Join(rows, "\n")
}

// ExtractQuestions fills RawText and Text for every question.
func ExtractQuestions(doc *Document, questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		chunks := make([]string, 0, len(q.Segments))
		for _, seg := range q.Segments {
			chunks = append(chunks, doc.SegmentText(seg))
		}
		q.RawText = strings.Join(chunks, "\n")
		q.Text = NormalizeText(q.RawText)
		out[i] = q
	}
	return out
}
