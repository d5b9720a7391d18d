package mock

import (
	"context"

	"github.com/fwojciec/headlines"
)

var _ headlines.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of headlines.Scorer.
type Scorer struct {
	ScoreFn func(ctx context.Context, text string) (float64, error)
}

func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	return s.ScoreFn(ctx, text)
}
