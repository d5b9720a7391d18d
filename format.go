package headlines

import (
	"strconv"
	"strings"
)

// FormatHeadlines renders one headline per line.
func FormatHeadlines(headlines []string) string {
	var b strings.Builder
	for _, h := range headlines {
		b.WriteString(h)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatReport renders each result as a Headline/Sentiment pair followed by
// a blank line, then the overall mean.
func FormatReport(report *AggregateReport) string {
	if report == nil {
		return ""
	}

	var b strings.Builder
	for _, r := range report.Results {
		b.WriteString("Headline: ")
		b.WriteString(r.Headline)
		b.WriteString("\nSentiment: ")
		b.WriteString(FormatScore(r.Score))
		b.WriteString("\n\n")
	}
	b.WriteString("Overall Sentiment: ")
	b.WriteString(FormatScore(report.Average))
	b.WriteString("\n")
	return b.String()
}

// FormatScore renders a score with the shortest representation that
// round-trips, e.g. 0.5, -0.4588, 0.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
