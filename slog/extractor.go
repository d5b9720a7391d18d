package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

// Ensure LoggingExtractor implements headlines.Extractor.
var _ headlines.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   headlines.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next headlines.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the selector and number of candidates found.
func (e *LoggingExtractor) Extract(html string, rule headlines.ExtractionRule) (candidates []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"selector", rule.Selector,
			"count", len(candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, rule)
}
