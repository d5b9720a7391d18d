package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

// Ensure LoggingScorer implements headlines.Scorer.
var _ headlines.Scorer = (*LoggingScorer)(nil)

// LoggingScorer wraps a Scorer with logging.
type LoggingScorer struct {
	next   headlines.Scorer
	logger *slog.Logger
}

// NewLoggingScorer creates a new LoggingScorer.
func NewLoggingScorer(next headlines.Scorer, logger *slog.Logger) *LoggingScorer {
	return &LoggingScorer{next: next, logger: logger}
}

// Score logs each scored headline at debug level.
func (s *LoggingScorer) Score(ctx context.Context, text string) (score float64, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("score",
			"headline", text,
			"score", score,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Score(ctx, text)
}
