package headlines

import "strings"

// TextSource selects where an ExtractionRule reads headline text from.
// It is implemented only by ElementText and AttributeValue.
type TextSource interface {
	textSource()
}

// ElementText reads the rendered text of the matched element: every
// descendant text node, joined by single spaces.
type ElementText struct{}

func (ElementText) textSource() {}

// AttributeValue reads the named attribute of the matched element.
// A missing attribute yields an empty string.
type AttributeValue struct {
	Name string
}

func (AttributeValue) textSource() {}

// ExtractionRule describes how to pull headline text from one site's markup.
type ExtractionRule struct {
	// Selector is a CSS selector matching headline elements.
	Selector string

	// Source selects element text or an attribute. Nil means ElementText.
	Source TextSource
}

// SiteRule binds an ExtractionRule to the sites whose URL contains Domain.
type SiteRule struct {
	Name   string
	Domain string
	Rule   ExtractionRule
}

// Matches reports whether the rule applies to the URL.
func (r SiteRule) Matches(url string) bool {
	return r.Domain != "" && strings.Contains(url, r.Domain)
}

// RuleResolver selects the extraction rule for a URL.
type RuleResolver interface {
	// Resolve returns the rule for the URL.
	// Returns EUNSUPPORTED if no known site matches.
	Resolve(url string) (ExtractionRule, error)
}

// Ensure SiteRules implements RuleResolver at compile time.
var _ RuleResolver = SiteRules(nil)

// SiteRules is an ordered rule table. The first matching entry wins.
type SiteRules []SiteRule

// Resolve returns the rule of the first entry whose domain is a substring of url.
func (rs SiteRules) Resolve(url string) (ExtractionRule, error) {
	for _, r := range rs {
		if r.Matches(url) {
			return r.Rule, nil
		}
	}
	return ExtractionRule{}, Errorf(EUNSUPPORTED, "unsupported site: %s", url)
}

// DefaultSiteRules returns the built-in rule table for the supported news sites.
// A new slice is returned on every call.
func DefaultSiteRules() SiteRules {
	return SiteRules{
		{
			Name:   "nytimes",
			Domain: "nytimes.com",
			Rule:   ExtractionRule{Selector: "p.indicate-hover", Source: ElementText{}},
		},
		{
			Name:   "theguardian",
			Domain: "theguardian.com",
			Rule:   ExtractionRule{Selector: "a.dcr-lv2v9o", Source: AttributeValue{Name: "aria-label"}},
		},
		{
			Name:   "bbc",
			Domain: "bbc.com",
			Rule:   ExtractionRule{Selector: `h2[data-testid="card-headline"]`, Source: ElementText{}},
		},
		{
			Name:   "nature",
			Domain: "nature.com",
			Rule:   ExtractionRule{Selector: "a.c-card__link", Source: ElementText{}},
		},
		{
			Name:   "economist",
			Domain: "economist.com",
			Rule:   ExtractionRule{Selector: "a[data-analytics]", Source: ElementText{}},
		},
	}
}
