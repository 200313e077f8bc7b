package app

import (
	"regexp"
	"strconv"
	"strings"

	"icebath_directory/internal/domain"
)

/********** column registry (single source of truth) **********/

const (
	colName     = "Name"
	colWebsite  = "Website"
	colPhone    = "Phone Number"
	colSocial   = "Official Social Account"
	colPrices   = "Prices"
	colReviews  = "Average Reviews (Number of Ratings)"
	colHours    = "Opening Hours"
	colGym      = "Does it also have a gym?"
	colSauna    = "Do they also have a sauna?"
	colContrast = "Ice bath contrast therapy?"
)

// name-ish header fragments, checked against the lowercased key
var nameKeyFragments = []string{"name", "title"}

var truthy = map[string]struct{}{"yes": {}, "true": {}, "1": {}}

// "4.8 (56)", "4 (3)", "4.80(56)"
var reviewsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\((\d+)\)`)

/********** tiny helpers **********/

// cleanText trims and drops C0/C1 control characters.
func cleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func optional(row domain.Row, key string) *string {
	v, ok := row.Get(key)
	if !ok {
		return nil
	}
	if s := strings.TrimSpace(v); s != "" {
		return &s
	}
	return nil
}

func flag(row domain.Row, key string) bool {
	v, _ := row.Get(key)
	_, ok := truthy[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

/********** name fallback chain **********/

type nameMatcher func(domain.Row) (string, bool)

// evaluated in order; first hit wins
var nameChain = []nameMatcher{exactNameKey, nameLikeKey, firstNonEmptyValue}

func exactNameKey(row domain.Row) (string, bool) {
	v, ok := row.Get(colName)
	if !ok {
		return "", false
	}
	s := cleanText(v)
	return s, s != ""
}

func nameLikeKey(row domain.Row) (string, bool) {
	for _, c := range row {
		k := strings.ToLower(c.Key)
		for _, frag := range nameKeyFragments {
			if !strings.Contains(k, frag) {
				continue
			}
			if s := cleanText(c.Value); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func firstNonEmptyValue(row domain.Row) (string, bool) {
	for _, c := range row {
		if s := cleanText(c.Value); s != "" {
			return s, true
		}
	}
	return "", false
}

func extractName(row domain.Row) string {
	for _, m := range nameChain {
		if s, ok := m(row); ok {
			return s
		}
	}
	return ""
}

/********** field parsers **********/

func parseReviews(row domain.Row) (float64, int) {
	v, ok := row.Get(colReviews)
	if !ok {
		return 0, 0
	}
	m := reviewsRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0
	}
	return rating, count
}

func parseHours(row domain.Row) domain.WorkingHours {
	text, ok := row.Get(colHours)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	var out domain.WorkingHours
	for _, seg := range strings.Split(text, ",") {
		day, hours, found := strings.Cut(seg, ":")
		if !found {
			continue
		}
		day, hours = strings.TrimSpace(day), strings.TrimSpace(hours)
		if day == "" || hours == "" {
			continue
		}
		out.Set(day, hours)
	}
	return out
}

/********** listing mapper **********/

// MapListing normalizes one spreadsheet row. It never fails; anything it
// cannot make sense of falls back to the zero value of the field.
func MapListing(row domain.Row, citySlug string) domain.Listing {
	rating, count := parseReviews(row)
	return domain.Listing{
		Name:         extractName(row),
		Site:         optional(row, colWebsite),
		Phone:        optional(row, colPhone),
		SocialHandle: optional(row, colSocial),
		PriceText:    optional(row, colPrices),
		Rating:       rating,
		ReviewCount:  count,
		WorkingHours: parseHours(row),
		Amenities: domain.Amenities{
			HasGym:             flag(row, colGym),
			HasSauna:           flag(row, colSauna),
			HasContrastTherapy: flag(row, colContrast),
		},
		CitySlug: citySlug,
	}
}

// MapListings maps rows in order. The result is never nil.
func MapListings(rows []domain.Row, citySlug string) []domain.Listing {
	out := make([]domain.Listing, 0, len(rows))
	for _, r := range rows {
		out = append(out, MapListing(r, citySlug))
	}
	return out
}
