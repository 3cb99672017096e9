package retriever

import (
	"fmt"
	"math"
	"sort"

	"examsearch/internal/corpus"
	"examsearch/internal/indexer"
	"examsearch/internal/vector"

	"github.com/blevesearch/bleve/v2"
)

// MaxResults caps every result list.
const MaxResults = 10

// Result is one ranked problem.
type Result struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Source string   `json:"source"`
	Score  float64  `json:"score"`
}

// Filter restricts results by exact attribute matches. Zero values match
// everything.
type Filter struct {
	Source   string   `json:"source,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Concepts []string `json:"concepts,omitempty"`
}

// IsZero reports whether f places no constraint at all.
func (f Filter) IsZero() bool {
	return f.Source == "" && len(f.Tags) == 0 && len(f.Concepts) == 0
}

// Match reports whether p satisfies every constraint of f.
func (f Filter) Match(p corpus.Problem) bool {
	if f.Source != "" && p.Source != f.Source {
		return false
	}
	return containsAll(p.Tags, f.Tags) && containsAll(p.Concepts, f.Concepts)
}

func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// Retriever answers queries over a corpus and its index. Both are shared
// read-only, so one Retriever serves concurrent requests without locking.
type Retriever struct {
	corpus *corpus.Corpus
	index  *indexer.Index
}

// NewRetriever creates a Retriever from a loaded corpus and its index.
func NewRetriever(c *corpus.Corpus, idx *indexer.Index) *Retriever {
	return &Retriever{corpus: c, index: idx}
}

// Get looks up a problem by id.
func (r *Retriever) Get(id string) (corpus.Problem, bool) {
	return r.corpus.Get(id)
}

// Corpus returns the underlying corpus.
func (r *Retriever) Corpus() *corpus.Corpus {
	return r.corpus
}

// Search ranks problems by cosine similarity between the query and each
// problem's vector, after applying f. Non-positive scores are dropped. A
// query with no characters left after normalization scores every
// filtered problem 1.0, so it lists them in corpus order.
func (r *Retriever) Search(query string, f Filter) []Result {
	queryVec := vector.Vectorize(query)

	var results []Result
	for _, e := range r.index.Entries {
		p, ok := r.corpus.Get(e.ID)
		if !ok || !f.Match(p) {
			continue
		}

		score := 1.0
		if len(queryVec) > 0 {
			sim := vector.Cosine(queryVec, e.Vector)
			if sim <= 0 {
				continue
			}
			score = round6(sim)
		}
		results = append(results, toResult(p, score))
	}

	// Stable so equal scores keep corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// KeywordSearch runs a full-text match query against the keyword index
// and applies f to the hits. An empty query returns no results.
func (r *Retriever) KeywordSearch(query string, f Filter) ([]Result, error) {
	if query == "" {
		return nil, nil
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = r.corpus.Len()
	res, err := r.index.Keyword.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search error: %w", err)
	}

	var results []Result
	for _, hit := range res.Hits {
		p, ok := r.corpus.Get(hit.ID)
		if !ok || !f.Match(p) {
			continue
		}
		results = append(results, toResult(p, round6(hit.Score)))
		if len(results) >= MaxResults {
			break
		}
	}
	return results, nil
}

func toResult(p corpus.Problem, score float64) Result {
	return Result{
		ID:     p.ID,
		Title:  p.Title,
		Tags:   p.Tags,
		Source: p.Source,
		Score:  score,
	}
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
