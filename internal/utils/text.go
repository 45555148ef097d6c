package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripAccents removes diacritical marks by decomposing to NFD and dropping
// combining marks.
func StripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// Slugify lower-cases s, collapses every run of non-alphanumeric runes to a
// single underscore and trims underscores at both ends. Accented letters are
// kept; combine with StripAccents for an ASCII slug.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// FoldKey is the lower-cased, accent-stripped, trimmed form of s used for
// substring matching on free-text labels.
func FoldKey(s string) string {
	return strings.TrimSpace(strings.ToLower(StripAccents(s)))
}

// ContainsFold reports whether needle appears in s ignoring case and accents
func ContainsFold(s, needle string) bool {
	return strings.Contains(FoldKey(s), FoldKey(needle))
}
