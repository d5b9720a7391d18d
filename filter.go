package headlines

import "strings"

// DenyList is a set of exact strings that are never headlines.
type DenyList map[string]struct{}

// NewDenyList builds a DenyList from entries.
func NewDenyList(entries ...string) DenyList {
	d := make(DenyList, len(entries))
	for _, e := range entries {
		d[e] = struct{}{}
	}
	return d
}

// DefaultDenyList returns the boilerplate strings known to match headline
// selectors on the supported sites.
func DefaultDenyList() DenyList {
	return NewDenyList(
		"Connections Companion",
		"Spelling Bee",
		"The Crossword",
		"Read full edition",
	)
}

// Contains reports whether s exactly equals an entry. A nil DenyList is empty.
func (d DenyList) Contains(s string) bool {
	_, ok := d[s]
	return ok
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Filter trims each candidate and keeps those with more than one word that
// are not in the deny list. Order and duplicates are preserved.
func Filter(candidates []string, deny DenyList) []string {
	headlines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		text := strings.TrimSpace(c)
		if WordCount(text) <= 1 {
			continue
		}
		if deny.Contains(text) {
			continue
		}
		headlines = append(headlines, text)
	}
	return headlines
}
