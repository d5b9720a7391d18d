// Package gemini scores headline sentiment with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/headlines"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Scorer implements headlines.Scorer at compile time.
var _ headlines.Scorer = (*Scorer)(nil)

// Scorer implements headlines.Scorer using Google Gemini.
type Scorer struct {
	client *genai.Client
}

// NewScorer creates a new Scorer.
func NewScorer(client *genai.Client) *Scorer {
	return &Scorer{client: client}
}

// Score asks the model for the polarity of text and parses its reply.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, headlines.Errorf(headlines.EINVALID, "headline required")
	}

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return 0, headlines.Errorf(headlines.ENETWORK, "gemini: %v", err)
	}
	if result == nil {
		return 0, headlines.Errorf(headlines.EINTERNAL, "gemini returned nil result")
	}

	return ParseScore(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You rate the sentiment polarity of news headlines. Reply with a single decimal number between -1 and 1, where -1 is most negative, 0 is neutral and 1 is most positive. Reply with the number only.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt for a single headline.
func BuildUserPrompt(headline string) string {
	return fmt.Sprintf("<headline>%s</headline>", headline)
}

// ParseScore parses a model reply into a polarity score.
// Replies that are not a number in [-1, 1] are EINVALID.
func ParseScore(reply string) (float64, error) {
	s := strings.TrimSpace(reply)
	score, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, headlines.Errorf(headlines.EINVALID, "unparseable score %q", s)
	}
	if math.IsNaN(score) || score < -1 || score > 1 {
		return 0, headlines.Errorf(headlines.EINVALID, "score out of range: %q", s)
	}
	return score, nil
}
