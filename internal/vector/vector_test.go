package vector

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc気体", Normalize(" A b\tC\n気　体 "))
	assert.Equal(t, "", Normalize(" \n\t"))
}

func TestNormalize_InformationSeparators(t *testing.T) {
	assert.Equal(t, "ab", Normalize("a\x1c\x1d\x1e\x1fb"))
	assert.Equal(t, "ab", Normalize("a\u0085\u00a0\u2028b"))
	assert.Equal(t, Vectorize("ab"), Vectorize("a\x1fb"))
}

func TestCharNGrams(t *testing.T) {
	assert.Equal(t, []string{"気体", "体の", "の状"}, CharNGrams("気体の状", 2))
	assert.Equal(t, []string{"気"}, CharNGrams("気", 2))
	assert.Nil(t, CharNGrams("", 2))
	assert.Equal(t, []string{"ab"}, CharNGrams("ab", 2))
}

func TestBucket(t *testing.T) {
	// md5("ab") = 187ef443..., 0x187ef443 % 4096 = 0x443
	assert.Equal(t, 0x443, Bucket("ab"))
	for _, g := range []string{"気体", "pH", "x", ""} {
		b := Bucket(g)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, Dim)
		assert.Equal(t, b, Bucket(g))
	}
}

func TestVectorize_UnitNorm(t *testing.T) {
	for _, text := range []string{"a", "ab", "理想気体の状態方程式", "pH pH pH 滴定", "問1 次の記述"} {
		v := Vectorize(text)
		require.NotEmpty(t, v, text)
		assert.InDelta(t, 1.0, v.Norm(), 1e-12, text)
		for i, w := range v {
			assert.True(t, i >= 0 && i < Dim)
			assert.Greater(t, w, 0.0)
		}
	}
}

func TestVectorize_EmptyInput(t *testing.T) {
	assert.Empty(t, Vectorize(""))
	assert.Empty(t, Vectorize("   \n\t"))
}

func TestVectorize_CountsRepeatedGrams(t *testing.T) {
	v := Vectorize("aaa")
	require.Len(t, v, 1)
	assert.InDelta(t, 1.0, v[Bucket("aa")], 1e-12)
}

func TestVectorize_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := Vectorize("PH 滴定")
	b := Vectorize("ph滴定")
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-12)
}

func TestCosine_SelfSimilarity(t *testing.T) {
	v := Vectorize("ハーバー・ボッシュ法による化学平衡")
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
}

func TestCosine_Symmetric(t *testing.T) {
	texts := []string{"気体の状態方程式", "理想気体と実在気体", "ベンゼンの置換反応", "a", ""}
	for _, x := range texts {
		for _, y := range texts {
			a, b := Vectorize(x), Vectorize(y)
			assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12, "%q vs %q", x, y)
		}
	}
}

func TestCosine_DisjointAndEmpty(t *testing.T) {
	a := Vector{1: 1}
	b := Vector{2: 1}
	assert.Equal(t, 0.0, Cosine(a, b))
	assert.Equal(t, 0.0, Cosine(a, Vector{}))
	assert.Equal(t, 0.0, Cosine(Vector{}, Vector{}))
}

func TestCosine_KnownValue(t *testing.T) {
	s := 1 / math.Sqrt(2)
	a := Vector{1: s, 2: s}
	b := Vector{1: 1}
	assert.InDelta(t, s, Cosine(a, b), 1e-12)
}

func TestBucket_CollisionRateStaysLow(t *testing.T) {
	// 1000 distinct grams into 4096 buckets: expected collisions ~ n^2/(2*Dim) ≈ 122.
	seen := make(map[int]bool)
	collisions := 0
	const n = 1000
	for i := 0; i < n; i++ {
		b := Bucket(fmt.Sprintf("%c%c", rune(0x4E00+i), rune(0x3042+i%80)))
		if seen[b] {
			collisions++
		}
		seen[b] = true
	}
	assert.Less(t, float64(collisions)/n, 0.2)
}
