package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsInitial reports whether a name token is an initial cluster such as
// "J.", "R.B." or "JH": with dots removed it is one to three letters, all
// uppercase.
func IsInitial(token string) bool {
	s := strings.ReplaceAll(token, ".", "")
	if s == "" || utf8.RuneCountInString(s) > 3 {
		return false
	}
	hasUpper := false
	for _, r := range s {
		if !unicode.IsLetter(r) || unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// SurnameKey reduces a full name to a lowercase comparison key: leading
// initials are dropped, then a capitalized first name is dropped when more
// tokens follow, keeping Dutch prefixes such as "van der".
//
//	SurnameKey("R.B. Havelaar") == "havelaar"
//	SurnameKey("Melanie van der Horst") == "van der horst"
//
// An empty key means no match is possible.
func SurnameKey(fullName string) string {
	parts := strings.Fields(fullName)
	for len(parts) > 0 && IsInitial(parts[0]) {
		parts = parts[1:]
	}
	if len(parts) > 1 && startsUpper(parts[0]) && !IsInitial(parts[0]) {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
