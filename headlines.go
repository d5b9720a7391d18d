// Package headlines provides a CLI-based news headline scraper.
// It fetches the front pages of a fixed set of news sites, extracts
// headline text using per-site CSS selector rules, filters out noise,
// and optionally scores each headline's sentiment polarity.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, vader/).
package headlines
