// Package goquery provides the goquery-backed implementation of
// headlines.Extractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/headlines"
)

// Ensure Extractor implements headlines.Extractor at compile time.
var _ headlines.Extractor = (*Extractor)(nil)

// Extractor applies an extraction rule to an HTML document.
// The selector is compiled with cascadia so that malformed selectors are
// reported instead of silently matching nothing.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns one candidate per matched element in
// document order.
func (e *Extractor) Extract(html string, rule headlines.ExtractionRule) ([]string, error) {
	matcher, err := cascadia.Compile(rule.Selector)
	if err != nil {
		return nil, headlines.Errorf(headlines.ESELECTOR, "invalid selector %q: %v", rule.Selector, err)
	}

	read, err := reader(rule.Source)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, headlines.Errorf(headlines.EINVALID, "failed to parse HTML: %v", err)
	}

	matches := doc.FindMatcher(matcher)
	candidates := make([]string, 0, matches.Length())
	matches.Each(func(_ int, sel *goquery.Selection) {
		candidates = append(candidates, read(sel))
	})

	return candidates, nil
}

// reader returns the function that reads candidate text for the source.
func reader(source headlines.TextSource) (func(*goquery.Selection) string, error) {
	switch src := source.(type) {
	case nil, headlines.ElementText:
		return elementText, nil
	case headlines.AttributeValue:
		name := src.Name
		return func(sel *goquery.Selection) string {
			return sel.AttrOr(name, "")
		}, nil
	default:
		return nil, headlines.Errorf(headlines.EINTERNAL, "unknown text source %T", source)
	}
}
