// Package classifier assigns subject tags and concept labels to questions.
//
// A curated override table keyed by question ordinal wins when present;
// otherwise an ordered keyword rule table is scanned and every matching
// rule contributes its tag and/or concept.
package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Uncategorized is assigned when no rule matches.
const Uncategorized = "その他"

// Classification is the pair of label sets attached to a question.
type Classification struct {
	Tags     []string `yaml:"tags" json:"tags"`
	Concepts []string `yaml:"concepts" json:"concepts"`
}

// Overrides maps a 1-based question ordinal to a curated classification.
type Overrides map[int]Classification

// Rule fires when any of its keywords occurs in the text. Tag and Concept
// may each be empty.
type Rule struct {
	Keywords []string
	Tag      string
	Concept  string
}

func (r Rule) matches(text string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Classifier is safe for concurrent use once built.
type Classifier struct {
	overrides Overrides
	rules     []Rule
}

// New builds a classifier. A nil overrides map selects DefaultOverrides.
func New(overrides Overrides) *Classifier {
	if overrides == nil {
		overrides = DefaultOverrides()
	}
	return &Classifier{overrides: overrides, rules: DefaultRules}
}

// WithRules returns a copy of c that evaluates rules instead of the
// built-in table.
func (c *Classifier) WithRules(rules []Rule) *Classifier {
	return &Classifier{overrides: c.overrides, rules: rules}
}

// Classify returns the override for ordinal if one exists, else the
// labels of every matching rule, deduplicated in first-seen order.
func (c *Classifier) Classify(text string, ordinal int) Classification {
	if o, ok := c.overrides[ordinal]; ok {
		return Classification{
			Tags:     append([]string(nil), o.Tags...),
			Concepts: append([]string(nil), o.Concepts...),
		}
	}

	var tags, concepts []string
	for _, r := range c.rules {
		if !r.matches(text) {
			continue
		}
		if r.Tag != "" {
			tags = appendUnique(tags, r.Tag)
		}
		if r.Concept != "" {
			concepts = appendUnique(concepts, r.Concept)
		}
	}

	if len(tags) == 0 {
		tags = []string{Uncategorized}
	}
	if len(concepts) == 0 {
		concepts = []string{Uncategorized}
	}
	return Classification{Tags: tags, Concepts: concepts}
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// LoadOverrides reads an override table from a YAML file of the form
//
//	1:
//	  tags: [気体]
//	  concepts: [理想気体]
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse overrides %s: %w", path, err)
	}
	for ordinal := range o {
		if ordinal < 1 {
			return nil, fmt.Errorf("overrides %s: ordinal %d must be >= 1", path, ordinal)
		}
	}
	if o == nil {
		o = Overrides{}
	}
	return o, nil
}
