package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerms(t *testing.T) {
	got := Terms("the quick brown fox", 2)
	want := []string{
		"the", "quick", "brown", "fox",
		"the quick", "quick brown", "brown fox",
	}
	assert.Equal(t, want, got)
}

func TestTermsDropsSingleCharacterTokens(t *testing.T) {
	got := Terms("a b is ok", 1)
	assert.Equal(t, []string{"is", "ok"}, got)
}

func TestFitDeterministic(t *testing.T) {
	texts := []string{
		"gravity pulls every mass toward every other mass",
		"the model generates fluent text about gravity",
		"history is written by people in archives",
	}
	a := Fit(texts, DefaultParams())
	b := Fit(texts, DefaultParams())
	require.Equal(t, a.Vocabulary, b.Vocabulary)
	require.Equal(t, a.IDF, b.IDF)
}

func TestTransformDimensionalityAndOOV(t *testing.T) {
	space := Fit([]string{"alpha beta gamma", "beta gamma delta"}, Params{MinDocFreq: 1, NGramMax: 1})
	dim := space.Dim()
	require.Greater(t, dim, 0)

	// Out-of-vocabulary terms contribute nothing.
	vec := space.Transform("omega sigma unknownwords")
	assert.Empty(t, vec)

	// Known terms land at fitted indices; dimensionality never changes.
	vec = space.Transform("alpha alpha beta")
	for idx := range vec {
		assert.Less(t, idx, dim)
	}
	assert.Equal(t, dim, space.Dim())
}

func TestTransformL2Normalized(t *testing.T) {
	space := Fit([]string{"alpha beta", "beta gamma", "gamma delta"}, Params{MinDocFreq: 1, NGramMax: 1})
	vec := space.Transform("alpha beta gamma")
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestFitMaxFeaturesKeepsMostFrequent(t *testing.T) {
	texts := []string{
		"common common common rare",
		"common common unusual",
	}
	space := Fit(texts, Params{MaxFeatures: 1, MinDocFreq: 1, NGramMax: 1})
	require.Equal(t, 1, space.Dim())
	_, ok := space.Vocabulary["common"]
	assert.True(t, ok)
}

func TestFitMaxDocFreqPrunesUbiquitousTerms(t *testing.T) {
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "filler distinctive" // "filler" in 100% of docs
	}
	texts[0] = "filler special"
	space := Fit(texts, Params{MaxDocFreq: 0.9, MinDocFreq: 1, NGramMax: 1})
	_, hasFiller := space.Vocabulary["filler"]
	assert.False(t, hasFiller, "terms above max_df must be pruned")
	_, hasSpecial := space.Vocabulary["special"]
	assert.True(t, hasSpecial)
}

func TestVectorDot(t *testing.T) {
	v := Vector{0: 0.5, 2: 2.0}
	weights := []float64{1.0, 10.0, 0.25}
	assert.InDelta(t, 1.0, v.Dot(weights), 1e-12)

	// Indices beyond the weight vector are ignored.
	v[10] = 100
	assert.InDelta(t, 1.0, v.Dot(weights), 1e-12)
}
