package morpholm

import (
	"github.com/ieee0824/morpholm-go/vocab"
)

// Features is the input of a discriminative word scorer.
type Features struct {
	Context []vocab.WordId // window of words, the scored word last; reused after Score returns
	Pieces  []vocab.WordId // morphemes the scored word was built from
}

// FeatureScorer scores a word from its features.
type FeatureScorer interface {
	Score(f Features) float64
}

// FeatureScorerFunc adapts a function to FeatureScorer.
type FeatureScorerFunc func(f Features) float64

func (fn FeatureScorerFunc) Score(f Features) float64 { return fn(f) }

// ConstantFeatureScorer returns the same score for every word.
type ConstantFeatureScorer float64

func (c ConstantFeatureScorer) Score(Features) float64 { return float64(c) }

// SubWordScorer stitches morphemes like MorphemeScorer but delegates word
// scoring to a FeatureScorer.
type SubWordScorer struct {
	engine
	features FeatureScorer
}

func (s *SubWordScorer) featureScore(window []vocab.WordId, pieces []string) float64 {
	ids := make([]vocab.WordId, len(pieces))
	for i, p := range pieces {
		ids[i] = vocab.Intern(p)
	}
	return s.features.Score(Features{Context: window, Pieces: ids})
}
