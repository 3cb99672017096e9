package indexer

import (
	"fmt"
	"log"
	"strings"
	"time"

	"examsearch/internal/corpus"
	"examsearch/internal/vector"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
)

// Entry is the precomputed vector of one problem.
type Entry struct {
	ID     string
	Vector vector.Vector
}

// Index holds one Entry per problem, in corpus order, plus an in-memory
// keyword index over the same records. It is built once and only read
// afterwards.
type Index struct {
	Entries []Entry
	Keyword bleve.Index
}

// keywordDoc is the document stored in the keyword index.
type keywordDoc struct {
	Title     string   `json:"title"`
	Statement string   `json:"statement"`
	Tags      []string `json:"tags"`
	Concepts  []string `json:"concepts"`
	Source    string   `json:"source"`
}

// SearchText is the text a problem is matched on: title, statement, tags
// and concepts separated by spaces.
func SearchText(p corpus.Problem) string {
	return strings.Join([]string{
		p.Title,
		p.Statement,
		strings.Join(p.Tags, " "),
		strings.Join(p.Concepts, " "),
	}, " ")
}

// Build vectorizes every problem and fills the keyword index.
func Build(c *corpus.Corpus) (*Index, error) {
	start := time.Now()

	mapping := bleve.NewIndexMapping()
	mapping.DefaultAnalyzer = cjk.AnalyzerName
	kw, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}

	idx := &Index{
		Entries: make([]Entry, 0, c.Len()),
		Keyword: kw,
	}

	batch := kw.NewBatch()
	for _, p := range c.Problems() {
		idx.Entries = append(idx.Entries, Entry{ID: p.ID, Vector: vector.Vectorize(SearchText(p))})

		err := batch.Index(p.ID, keywordDoc{
			Title:     p.Title,
			Statement: p.Statement,
			Tags:      p.Tags,
			Concepts:  p.Concepts,
			Source:    p.Source,
		})
		if err != nil {
			_ = kw.Close()
			return nil, fmt.Errorf("failed to index %s: %w", p.ID, err)
		}
	}
	if err := kw.Batch(batch); err != nil {
		_ = kw.Close()
		return nil, fmt.Errorf("failed to commit keyword index: %w", err)
	}

	log.Printf("Indexed %d problems in %v", len(idx.Entries), time.Since(start))
	return idx, nil
}

// Close releases the keyword index.
func (idx *Index) Close() error {
	if idx.Keyword != nil {
		return idx.Keyword.Close()
	}
	return nil
}
