package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// asciiOnly drops every byte that does not decode to printable ASCII.
// Ill-formed bytes are first replaced with U+FFFD so the removal predicate
// catches them too. Usernames are compared and stored in this form only.
var asciiOnly = transform.Chain(
	runes.ReplaceIllFormed(),
	runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})),
)

// sanitize trims and ASCII-normalizes an extracted username. Results are
// memoized: log lines repeat the same names constantly.
func (c *Classifier) sanitize(raw string) string {
	if clean, ok := c.names.Get(raw); ok {
		return clean
	}
	clean, _, err := transform.String(asciiOnly, raw)
	if err != nil {
		// Remove never fails on complete input, but keep the raw name
		// rather than dropping the event.
		clean = raw
	}
	clean = strings.TrimSpace(clean)
	c.names.Add(raw, clean)
	return clean
}
