// Package corpus holds the persisted problem records and loads them once
// at startup. A corpus that fails validation is never served.
package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrMissingField is returned when a record lacks a required key.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate id")
)

// RequiredFields must be present on every record.
var RequiredFields = []string{"id", "title", "statement", "tags", "concepts", "source"}

// PDFRef points at an exported sub-document, relative to the PDF root.
type PDFRef struct {
	File string `json:"file"`
}

// Problem is one persisted exam question.
type Problem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Statement string   `json:"statement"`
	Choices   []string `json:"choices"`
	Answer    string   `json:"answer"`
	Tags      []string `json:"tags"`
	Concepts  []string `json:"concepts"`
	Source    string   `json:"source"`
	PDF       *PDFRef  `json:"pdf,omitempty"`
}

// Corpus is an immutable, validated problem set with id lookup.
type Corpus struct {
	problems []Problem
	byID     map[string]int
}

// Load reads and validates the corpus file at path.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a JSON array of problems, checking that every required
// key is present before decoding the records themselves.
func Parse(data []byte) (*Corpus, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid corpus json: %w", err)
	}
	for i, item := range raw {
		var missing []string
		for _, k := range RequiredFields {
			if _, ok := item[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w %v in problem %d", ErrMissingField, missing, i)
		}
	}

	var problems []Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("invalid problem record: %w", err)
	}
	return New(problems)
}

// New validates id uniqueness and builds the lookup table. The slice is
// owned by the corpus afterwards.
func New(problems []Problem) (*Corpus, error) {
	c := &Corpus{
		problems: problems,
		byID:     make(map[string]int, len(problems)),
	}
	for i, p := range problems {
		if p.ID == "" {
			return nil, fmt.Errorf("%w [id] in problem %d", ErrMissingField, i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Len returns the number of problems.
func (c *Corpus) Len() int {
	return len(c.problems)
}

// Problems returns the records in corpus order. Callers must not modify it.
func (c *Corpus) Problems() []Problem {
	return c.problems
}

// At returns the i-th problem in corpus order.
func (c *Corpus) At(i int) Problem {
	return c.problems[i]
}

// Get looks up a problem by id.
func (c *Corpus) Get(id string) (Problem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Problem{}, false
	}
	return c.problems[i], true
}

// Sources returns the distinct source identifiers, sorted.
func (c *Corpus) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.problems {
		if !seen[p.Source] {
			seen[p.Source] = true
			out = append(out, p.Source)
		}
	}
	sort.Strings(out)
	return out
}

// TagCounts returns how many problems carry each tag.
func (c *Corpus) TagCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range c.problems {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	return counts
}

// WriteJSON writes v as indented JSON, replacing any existing file.
func WriteJSON(path string, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalJSON renders v as indented JSON without HTML escaping, so
// Japanese text and symbols stay readable in the file.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
