package mock

import "github.com/fwojciec/headlines"

var _ headlines.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of headlines.Extractor.
type Extractor struct {
	ExtractFn func(html string, rule headlines.ExtractionRule) ([]string, error)
}

func (e *Extractor) Extract(html string, rule headlines.ExtractionRule) ([]string, error) {
	return e.ExtractFn(html, rule)
}

var _ headlines.RuleResolver = (*RuleResolver)(nil)

// RuleResolver is a mock implementation of headlines.RuleResolver.
type RuleResolver struct {
	ResolveFn func(url string) (headlines.ExtractionRule, error)
}

func (r *RuleResolver) Resolve(url string) (headlines.ExtractionRule, error) {
	return r.ResolveFn(url)
}
