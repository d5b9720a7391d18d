package headlines

// Source is a news front page scraped in all-sources mode.
type Source struct {
	Name string
	URL  string
}

// DefaultSources returns the front pages scraped by all-sources mode,
// in output order. A new slice is returned on every call.
func DefaultSources() []Source {
	return []Source{
		{Name: "nytimes", URL: "https://www.nytimes.com/"},
		{Name: "theguardian", URL: "https://www.theguardian.com/"},
		{Name: "bbc", URL: "https://www.bbc.com/"},
		{Name: "nature", URL: "https://www.nature.com/"},
		{Name: "economist", URL: "https://www.economist.com/"},
	}
}
