// Package textnorm canonicalizes free-form names so labels from different
// sources can be compared, and scores how alike two labels are.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops combining marks and recomposes.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize folds diacritics, lowercases, keeps only ASCII letters, digits
// and whitespace, and collapses whitespace runs to a single space.
//
//	Normalize("Partij voor de Dieren!") == "partij voor de dieren"
//	Normalize("  Dénk ") == "denk"
func Normalize(s string) string {
	lowered := strings.ToLower(stripMarks(s))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Key is the strict variant of Normalize used for alias lookups: letters and
// digits only, so "groen links" and "Groen-Links" share the
// key "groenlinks".
func Key(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}

// FoldASCII applies compatibility decomposition, drops every non-ASCII rune,
// lowercases and collapses whitespace. Punctuation survives, which is what
// social-profile display names need.
func FoldASCII(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity returns the Ratcliff/Obershelp ratio 2*M/(len(a)+len(b)) of the
// two strings, measured in runes. Two empty strings score 1.0. The inputs
// are compared as given; use NormalizedSimilarity for raw labels.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

// NormalizedSimilarity scores Normalize(a) against Normalize(b).
func NormalizedSimilarity(a, b string) float64 {
	return Similarity(Normalize(a), Normalize(b))
}

// ContainsEither reports whether either string contains the other.
// Empty strings never match.
func ContainsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
