package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SlugToFileStem maps "new-york" to "New-York". Slugs that already carry
// capitals in the middle of a part ("mcallen" vs "McAllen") do not
// round-trip on case-sensitive filesystems.
func SlugToFileStem(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		parts[i] = upperFirst(p)
	}
	return strings.Join(parts, "-")
}

// DisplayName maps "san-diego" to "San Diego".
func DisplayName(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		parts[i] = upperFirst(p)
	}
	return strings.Join(parts, " ")
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
