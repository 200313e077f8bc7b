package app

import "strings"

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

const defaultLanguage = "en"

// primary language per country directory name
var countryLanguages = map[string]string{
	"Israel":  "he",
	"USA":     "en",
	"UK":      "en",
	"France":  "fr",
	"Germany": "de",
	"Spain":   "es",
	"Italy":   "it",
	"Japan":   "ja",
}

var rtlLanguages = map[string]struct{}{"he": {}, "ar": {}, "ur": {}, "fa": {}}

func LanguageForCountry(country string) string {
	if code, ok := countryLanguages[country]; ok {
		return code
	}
	return defaultLanguage
}

func LanguageDirection(code string) Direction {
	if _, ok := rtlLanguages[code]; ok {
		return RTL
	}
	return LTR
}

// CountrySlug gives "france-fr" for "France".
func CountrySlug(country string) string {
	return strings.ToLower(country) + "-" + LanguageForCountry(country)
}

// ParseCountrySlug splits a trailing two-letter language code off slug.
// Without one, the whole slug is the country and the language is "en".
func ParseCountrySlug(slug string) (country, lang string) {
	i := strings.LastIndexByte(slug, '-')
	if i < 0 {
		return slug, defaultLanguage
	}
	if code := slug[i+1:]; len(code) == 2 {
		return slug[:i], code
	}
	return slug, defaultLanguage
}
