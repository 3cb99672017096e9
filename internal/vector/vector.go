// Package vector turns text into sparse hashed character-bigram vectors.
//
// Distinct bigrams can land in the same bucket. That only ever inflates
// similarity, never hides a shared bigram, and with Dim buckets the rate
// stays low for question-sized texts.
package vector

import (
	"crypto/md5"
	"encoding/binary"
	"math"
	"strings"
	"unicode"
)

// Dim is the number of hash buckets.
const Dim = 4096

// NGram is the window length used by Vectorize.
const NGram = 2

// Vector maps a bucket in [0, Dim) to a non-negative weight. A non-empty
// Vector produced by Vectorize has unit Euclidean norm.
type Vector map[int]float64

// Normalize lowercases text and removes all whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, text)
}

// isSpace extends unicode.IsSpace with the C0 information separators
// U+001C..U+001F, which existing indexes also treat as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CharNGrams returns every overlapping window of n characters, left to
// right. Text shorter than n yields itself as a single gram, or nothing
// when empty.
func CharNGrams(text string, n int) []string {
	runes := []rune(text)
	if len(runes) < n {
		if len(runes) == 0 {
			return nil
		}
		return []string{text}
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// Bucket hashes a gram into [0, Dim) using the first four bytes of its
// MD5 digest, read big-endian.
func Bucket(gram string) int {
	sum := md5.Sum([]byte(gram))
	return int(binary.BigEndian.Uint32(sum[:4]) % Dim)
}

// Vectorize counts the bigrams of the normalized text per bucket and
// scales the counts to unit length.
func Vectorize(text string) Vector {
	vec := make(Vector)
	for _, g := range CharNGrams(Normalize(text), NGram) {
		vec[Bucket(g)]++
	}

	norm := vec.Norm()
	if norm == 0 {
		return vec
	}
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the dot product of two unit vectors, iterating the
// smaller one. Missing buckets count as zero.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for i, w := range a {
		dot += w * b[i]
	}
	return dot
}
