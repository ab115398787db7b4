package ml

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Runs of two or more word characters; equivalent to \b\w\w+\b with unicode word classes.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vectorizer maps text to an L2-normalised TF-IDF vector using a frozen vocabulary.
// It is safe for concurrent use once fitted or decoded.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// FitVectorizer builds the vocabulary and smoothed IDF weights from corpus.
// Terms are indexed in sorted order so repeated fits over the same corpus are identical.
func FitVectorizer(corpus []string) (*Vectorizer, error) {
	if len(corpus) == 0 {
		return nil, errors.New("empty corpus for tf-idf fit")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, errors.New("no tokens found in corpus")
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return v, nil
}

// Tokenize lowercases text and splits it into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Dimension returns the width of produced vectors.
func (v *Vectorizer) Dimension() int { return len(v.IDF) }

// Transform vectorizes text. Out-of-vocabulary tokens are dropped; text with no
// known tokens yields a zero vector.
func (v *Vectorizer) Transform(text string) Sparse {
	counts := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	out := Sparse{Dim: v.Dimension()}
	if len(counts) == 0 {
		return out
	}
	out.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)
	out.Values = make([]float64, len(out.Indices))
	for i, idx := range out.Indices {
		out.Values[i] = float64(counts[idx]) * v.IDF[idx]
	}
	return out.Normalized()
}

// Validate checks that the vocabulary and IDF table agree.
func (v *Vectorizer) Validate() error {
	if v == nil || len(v.IDF) == 0 {
		return errors.New("vectorizer is empty")
	}
	if len(v.Vocabulary) != len(v.IDF) {
		return fmt.Errorf("vectorizer: %d terms but %d idf weights", len(v.Vocabulary), len(v.IDF))
	}
	used := make([]bool, len(v.IDF))
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) || used[idx] {
			return fmt.Errorf("vectorizer: bad index %d for term %q", idx, term)
		}
		used[idx] = true
	}
	return nil
}
