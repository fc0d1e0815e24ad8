// Package textsearch matches user search terms against names regardless of
// case and accents, so "acucar" finds "Açúcar".
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips combining marks and case-folds s.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Match reports whether query occurs in any of fields. An empty query matches.
func Match(query string, fields ...string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}
