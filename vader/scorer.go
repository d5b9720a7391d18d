// Package vader scores headline sentiment with the VADER lexicon.
package vader

import (
	"context"

	"github.com/fwojciec/headlines"
	"github.com/jonreiter/govader"
)

// Ensure Scorer implements headlines.Scorer.
var _ headlines.Scorer = (*Scorer)(nil)

// Scorer returns the VADER compound polarity of a text, in [-1, 1].
// It is safe for concurrent use; the lexicon is read-only after
// construction.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer loads the lexicon and returns a Scorer.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.analyzer.PolarityScores(text).Compound, nil
}
