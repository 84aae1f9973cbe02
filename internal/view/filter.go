// Package view derives the visible beer list from the catalog and the
// user's query state. Everything here is pure: no I/O, no shared state.
package view

import (
	"strings"

	"github.com/five82/beerdex/internal/catalog"
)

// Matcher reports whether a beer name matches a query.
type Matcher struct {
	needle string
}

// NewMatcher builds a case-insensitive substring matcher for query. The
// query is matched literally, so any input, including bytes that are not
// valid UTF-8, is accepted.
func NewMatcher(query string) Matcher {
	return Matcher{needle: fold(query)}
}

// Match reports whether name contains the query, ignoring case.
func (m Matcher) Match(name string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(fold(name), m.needle)
}

// fold lower-cases s, with each run of invalid bytes replaced by U+FFFD.
func fold(s string) string {
	return strings.ToLower(strings.ToValidUTF8(s, "\uFFFD"))
}

// Filter returns the beers whose name contains query, ignoring case, in
// catalog order. An empty query returns every beer.
func Filter(beers []catalog.Beer, query string) []catalog.Beer {
	m := NewMatcher(query)
	out := make([]catalog.Beer, 0, len(beers))
	for _, b := range beers {
		if m.Match(b.Name) {
			out = append(out, b)
		}
	}
	return out
}

// Count is len(Filter(beers, query)) without building the slice.
func Count(beers []catalog.Beer, query string) int {
	m := NewMatcher(query)
	n := 0
	for _, b := range beers {
		if m.Match(b.Name) {
			n++
		}
	}
	return n
}
