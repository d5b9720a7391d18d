package headlines

// Extractor pulls candidate headline strings out of an HTML document.
type Extractor interface {
	// Extract parses html once and returns one candidate per element
	// matching rule.Selector, in document order. Candidates are not
	// trimmed or filtered.
	//
	// Returns ESELECTOR if the selector cannot be compiled.
	Extract(html string, rule ExtractionRule) ([]string, error)
}
