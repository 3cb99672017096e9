package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_OverrideWins(t *testing.T) {
	c := New(nil)
	got := c.Classify("ベンゼン 触媒 pH", 2)
	assert.Equal(t, []string{"気体", "物理化学"}, got.Tags)
	assert.Equal(t, []string{"理想気体", "実在気体"}, got.Concepts)
}

func TestClassify_OverrideIsCopied(t *testing.T) {
	c := New(Overrides{1: {Tags: []string{"a"}, Concepts: []string{"b"}}})
	got := c.Classify("", 1)
	got.Tags[0] = "mutated"
	assert.Equal(t, []string{"a"}, c.Classify("", 1).Tags)
}

func TestClassify_RuleFallback(t *testing.T) {
	c := New(Overrides{})
	got := c.Classify("理想気体の状態方程式を用いて平衡を考える", 99)
	assert.Equal(t, []string{"気体", "平衡"}, got.Tags)
	assert.Equal(t, []string{"気体", "化学平衡", "気体の状態方程式"}, got.Concepts)
}

func TestClassify_DeduplicatesInFirstSeenOrder(t *testing.T) {
	c := New(Overrides{}).WithRules([]Rule{
		{Keywords: []string{"x"}, Tag: "A", Concept: "c1"},
		{Keywords: []string{"y"}, Tag: "B"},
		{Keywords: []string{"x", "y"}, Tag: "A", Concept: "c2"},
		{Keywords: []string{"z"}, Concept: "c1"},
	})
	got := c.Classify("x y z", 1)
	assert.Equal(t, []string{"A", "B"}, got.Tags)
	assert.Equal(t, []string{"c1", "c2"}, got.Concepts)
}

func TestClassify_Uncategorized(t *testing.T) {
	c := New(Overrides{})
	got := c.Classify("なにもない", 1)
	assert.Equal(t, []string{Uncategorized}, got.Tags)
	assert.Equal(t, []string{Uncategorized}, got.Concepts)
}

func TestClassify_TagWithoutConcept(t *testing.T) {
	c := New(Overrides{})
	got := c.Classify("中和", 1)
	assert.Equal(t, []string{"酸塩基"}, got.Tags)
	assert.Equal(t, []string{Uncategorized}, got.Concepts)
}

func TestDefaultOverrides_Complete(t *testing.T) {
	o := DefaultOverrides()
	require.Len(t, o, 23)
	for i := 1; i <= 23; i++ {
		entry, ok := o[i]
		require.True(t, ok, "ordinal %d missing", i)
		assert.NotEmpty(t, entry.Tags)
		assert.NotEmpty(t, entry.Concepts)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "overrides.yaml")
		require.NoError(t, os.WriteFile(path, []byte("3:\n  tags: [コロイド]\n  concepts: [分散系, コロイド]\n"), 0644))

		o, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, Classification{Tags: []string{"コロイド"}, Concepts: []string{"分散系", "コロイド"}}, o[3])

		got := New(o).Classify("気体", 3)
		assert.Equal(t, []string{"コロイド"}, got.Tags)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		o, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Empty(t, o)
	})

	t.Run("bad ordinal", func(t *testing.T) {
		path := filepath.Join(dir, "zero.yaml")
		require.NoError(t, os.WriteFile(path, []byte("0:\n  tags: [x]\n"), 0644))
		_, err := LoadOverrides(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOverrides(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
