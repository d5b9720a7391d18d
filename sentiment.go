package headlines

import (
	"context"
	"math"
)

// Scorer assigns a compound sentiment polarity to a span of text.
type Scorer interface {
	// Score returns a polarity in [-1, 1]; negative is unfavourable,
	// positive favourable and zero neutral.
	Score(ctx context.Context, text string) (float64, error)
}

// SentimentResult is the polarity of a single headline.
type SentimentResult struct {
	Headline string
	Score    float64
}

// AggregateReport holds per-headline scores and their arithmetic mean.
type AggregateReport struct {
	Results []SentimentResult
	Average float64
}

// Aggregate scores each headline in order and computes the mean score.
// Returns EEMPTY if headlines is empty and EINVALID if the scorer returns
// a value outside [-1, 1].
func Aggregate(ctx context.Context, scorer Scorer, headlines []string) (*AggregateReport, error) {
	if len(headlines) == 0 {
		return nil, Errorf(EEMPTY, "no headlines to score")
	}

	report := &AggregateReport{
		Results: make([]SentimentResult, 0, len(headlines)),
	}

	var sum float64
	for _, h := range headlines {
		score, err := scorer.Score(ctx, h)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(score) || score < -1 || score > 1 {
			return nil, Errorf(EINVALID, "score %v for %q is outside [-1, 1]", score, h)
		}
		sum += score
		report.Results = append(report.Results, SentimentResult{Headline: h, Score: score})
	}
	report.Average = sum / float64(len(report.Results))

	return report, nil
}
