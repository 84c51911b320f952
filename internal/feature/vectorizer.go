// Package feature turns normalized text into sparse TF-IDF vectors. A
// FeatureSpace is fitted once on the training partition and is immutable
// afterwards; serving-time transforms reuse the fitted vocabulary.
package feature

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRe matches word tokens of at least two characters, including
// accented letters (the corpus is not ASCII-only).
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Params control vocabulary construction.
type Params struct {
	// MaxFeatures caps the vocabulary size; the most frequent terms
	// across the corpus win, ties broken alphabetically. 0 means no cap.
	MaxFeatures int `json:"max_features"`
	// MaxDocFreq prunes terms present in more than this fraction of
	// documents.
	MaxDocFreq float64 `json:"max_doc_freq"`
	// MinDocFreq prunes terms present in fewer than this many documents.
	MinDocFreq int `json:"min_doc_freq"`
	// NGramMax is the longest n-gram emitted; 2 adds bigrams to unigrams.
	NGramMax int `json:"ngram_max"`
}

// DefaultParams are the production training setup: unigrams plus
// bigrams, max_df 0.9, min_df 1, at most 20000 features.
func DefaultParams() Params {
	return Params{
		MaxFeatures: 20000,
		MaxDocFreq:  0.9,
		MinDocFreq:  1,
		NGramMax:    2,
	}
}

// FeatureSpace is a fitted vocabulary with smoothed IDF weights.
type FeatureSpace struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Params     Params         `json:"params"`
	NDocs      int            `json:"n_docs"`
}

// Vector is a sparse feature vector indexed by vocabulary position.
type Vector map[int]float64

// Dot returns the inner product with a dense weight vector. Indices
// beyond the weight length contribute nothing.
func (v Vector) Dot(weights []float64) float64 {
	var sum float64
	for i, val := range v {
		if i < len(weights) {
			sum += val * weights[i]
		}
	}
	return sum
}

// Terms extracts the n-gram terms of text according to params.
func Terms(text string, nGramMax int) []string {
	tokens := tokenRe.FindAllString(text, -1)
	if nGramMax <= 1 {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*nGramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= nGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit builds a FeatureSpace from the training texts. Identical texts in
// identical order always yield an identical space: candidate terms are
// ranked by corpus frequency with alphabetical tie-breaking and the
// final vocabulary is index-assigned in sorted term order.
func Fit(texts []string, params Params) *FeatureSpace {
	n := len(texts)
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, term := range Terms(text, params.NGramMax) {
			corpusFreq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	maxDF := n
	if params.MaxDocFreq > 0 {
		maxDF = int(params.MaxDocFreq * float64(n))
	}
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < params.MinDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}

	if params.MaxFeatures > 0 && len(candidates) > params.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			fi, fj := corpusFreq[candidates[i]], corpusFreq[candidates[j]]
			if fi != fj {
				return fi > fj
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:params.MaxFeatures]
	}
	sort.Strings(candidates)

	space := &FeatureSpace{
		Vocabulary: make(map[string]int, len(candidates)),
		IDF:        make([]float64, len(candidates)),
		Params:     params,
		NDocs:      n,
	}
	for i, term := range candidates {
		space.Vocabulary[term] = i
		// Smoothed IDF; keeps weights finite for terms present everywhere.
		space.IDF[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}
	return space
}

// Dim returns the fixed dimensionality of vectors produced by Transform.
func (s *FeatureSpace) Dim() int { return len(s.IDF) }

// Transform maps text into the fitted space. Out-of-vocabulary terms
// contribute nothing; the result is L2-normalized.
func (s *FeatureSpace) Transform(text string) Vector {
	vec := make(Vector)
	for _, term := range Terms(text, s.Params.NGramMax) {
		if idx, ok := s.Vocabulary[term]; ok {
			vec[idx] += s.IDF[idx]
		}
	}
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// TransformAll transforms a batch of texts in order.
func (s *FeatureSpace) TransformAll(texts []string) []Vector {
	vectors := make([]Vector, len(texts))
	for i, text := range texts {
		vectors[i] = s.Transform(text)
	}
	return vectors
}
