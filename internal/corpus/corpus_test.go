package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCorpus = `[
  {"id": "a_q01", "title": "問1", "statement": "気体", "tags": ["気体", "計算"], "concepts": ["理想気体"], "source": "a",
   "choices": ["1", "2"], "answer": "1", "pdf": {"file": "a/a_q01.pdf"}},
  {"id": "a_q02", "title": "問2", "statement": "有機", "tags": ["有機"], "concepts": [], "source": "b"}
]`

func TestParse_Valid(t *testing.T) {
	c, err := Parse([]byte(validCorpus))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, ok := c.Get("a_q01")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, p.Choices)
	require.NotNil(t, p.PDF)
	assert.Equal(t, "a/a_q01.pdf", p.PDF.File)

	p2, ok := c.Get("a_q02")
	require.True(t, ok)
	assert.Nil(t, p2.PDF)
	assert.Empty(t, p2.Choices)
	assert.Equal(t, "", p2.Answer)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "a_q02", c.At(1).ID)
	assert.Equal(t, []string{"a", "b"}, c.Sources())
	assert.Equal(t, map[string]int{"気体": 1, "計算": 1, "有機": 1}, c.TagCounts())
}

func TestParse_DuplicateID(t *testing.T) {
	data := `[
	  {"id": "x", "title": "t", "statement": "s", "tags": [], "concepts": [], "source": "s"},
	  {"id": "x", "title": "t2", "statement": "s2", "tags": [], "concepts": [], "source": "s"}
	]`
	_, err := Parse([]byte(data))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestParse_MissingRequiredField(t *testing.T) {
	for _, field := range RequiredFields {
		t.Run(field, func(t *testing.T) {
			record := map[string]string{
				"id":        `"x"`,
				"title":     `"t"`,
				"statement": `"s"`,
				"tags":      `[]`,
				"concepts":  `[]`,
				"source":    `"src"`,
			}
			delete(record, field)
			data := "[{"
			first := true
			for k, v := range record {
				if !first {
					data += ","
				}
				first = false
				data += `"` + k + `":` + v
			}
			data += "}]"

			_, err := Parse([]byte(data))
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestParse_MissingStatementOnLaterRecord(t *testing.T) {
	data := `[
	  {"id": "x", "title": "t", "statement": "s", "tags": [], "concepts": [], "source": "s"},
	  {"id": "y", "title": "t", "tags": [], "concepts": [], "source": "s"}
	]`
	_, err := Parse([]byte(data))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"id": "x"}`))
	assert.Error(t, err)
}

func TestNew_EmptyID(t *testing.T) {
	_, err := New([]Problem{{ID: ""}})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLoad_RoundTripThroughWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "problems.json")
	problems := []Problem{{
		ID: "s_q01", Title: "問1 <A&B>", Statement: "本文", Choices: []string{},
		Tags: []string{"気体"}, Concepts: []string{"理想気体"}, Source: "s",
		PDF: &PDFRef{File: "s/s_q01.pdf"},
	}}
	require.NoError(t, WriteJSON(path, problems))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<A&B>")

	c, err := Load(path)
	require.NoError(t, err)
	got, ok := c.Get("s_q01")
	require.True(t, ok)
	assert.Equal(t, problems[0], got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
