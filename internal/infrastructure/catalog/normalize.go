package catalog

import (
	"regexp"
	"strings"
)

// Multiple spaces cleanup
var spaceRunPattern = regexp.MustCompile(`\s+`)

// NormalizeName collapses internal whitespace runs to single spaces and trims
// leading/trailing whitespace. It does not change casing; canonical casing
// always comes from the stored record.
func NormalizeName(s string) string {
	return strings.TrimSpace(spaceRunPattern.ReplaceAllString(s, " "))
}

// NamesEqual reports whether a stored name and a query refer to the same
// record: anchored, case-insensitive equality of the normalized forms. A name
// that merely contains the query does not match.
func NamesEqual(stored, query string) bool {
	return strings.EqualFold(NormalizeName(stored), NormalizeName(query))
}
