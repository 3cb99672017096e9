// Package pipeline turns one exam document into corpus records: markers
// are detected, segmented, extracted, exported and classified in a single
// sequential pass. Any failing step aborts the run; a question with no
// visible region is kept without a sub-document.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"examsearch/internal/classifier"
	"examsearch/internal/corpus"
	"examsearch/internal/exporter"
	"examsearch/internal/extractor"
)

// Exporter writes the sub-document of one question.
type Exporter interface {
	Export(segments []extractor.Segment, outPath string) error
}

// Options names the output of a run.
type Options struct {
	// Source identifies the document in the corpus and namespaces its
	// sub-documents below PDFRoot.
	Source string
	// IDPrefix prefixes problem ids: <IDPrefix>_q01. Defaults to Source.
	IDPrefix string
	// PDFRoot is the directory sub-documents are written under.
	PDFRoot string
}

// RawDump records the intermediate geometry and text of a run.
type RawDump struct {
	Document  string               `json:"document"`
	Digest    string               `json:"digest"`
	Pages     int                  `json:"pages"`
	Questions []extractor.Question `json:"questions"`
}

// Result is the output of one run.
type Result struct {
	Markers  int
	Problems []corpus.Problem
	Raw      RawDump
}

// ProblemID returns the id of the question with the given ordinal.
func ProblemID(prefix string, ordinal int) string {
	return fmt.Sprintf("%s_q%02d", prefix, ordinal)
}

// Title is the first non-empty line of text, or a numbered fallback.
func Title(text string, ordinal int) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return fmt.Sprintf("Question %d", ordinal)
}

// Run processes doc end to end.
func Run(doc *extractor.Document, cls *classifier.Classifier, exp Exporter, opts Options) (*Result, error) {
	if opts.Source == "" {
		return nil, fmt.Errorf("pipeline: source is required")
	}
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = opts.Source
	}

	markers, err := extractor.DetectMarkers(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}
	log.Printf("Detected %d question markers in %s", len(markers), doc.Name)

	questions := extractor.ExtractQuestions(doc, extractor.BuildSegments(doc, markers))

	res := &Result{
		Markers: len(markers),
		Raw: RawDump{
			Document:  doc.Name,
			Digest:    doc.Digest,
			Pages:     doc.PageCount(),
			Questions: questions,
		},
	}

	for _, q := range questions {
		id := ProblemID(prefix, q.Ordinal)

		ref := &corpus.PDFRef{File: exporter.RelPath(opts.Source, id)}
		err := exp.Export(q.Segments, exporter.OutputPath(opts.PDFRoot, opts.Source, id))
		switch {
		case errors.Is(err, exporter.ErrNothingToExport):
			// Two markers on the same clipped row leave a zero-height band.
			log.Printf("Warning: %s has no visible region, skipping its sub-document", id)
			ref = nil
		case err != nil:
			return nil, fmt.Errorf("export %s: %w", id, err)
		}

		labels := cls.Classify(q.Text, q.Ordinal)
		res.Problems = append(res.Problems, corpus.Problem{
			ID:        id,
			Title:     Title(q.Text, q.Ordinal),
			Statement: q.Text,
			Choices:   []string{},
			Answer:    "",
			Tags:      labels.Tags,
			Concepts:  labels.Concepts,
			Source:    opts.Source,
			PDF:       ref,
		})
	}

	// Reject a run that would produce a corpus the server refuses to load.
	if _, err := corpus.New(res.Problems); err != nil {
		return nil, err
	}
	return res, nil
}
