package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes an institution name for fuzzy comparison:
// lowercase, accents stripped, only [a-z0-9] and single spaces kept.
//
//	NormalizeName("Hôpital  Necker - Enfants Malades") == "hopital necker enfants malades"
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	lowered := strings.ToLower(name)

	// transform.Chain keeps internal state, build one per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		decomposed = lowered
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsEither reports whether one normalized name contains the other.
// Empty names never match.
func ContainsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
