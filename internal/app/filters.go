package app

import (
	"fmt"

	"icebath_directory/internal/domain"
)

type Filter string

const (
	FilterAll     Filter = ""
	FilterGym     Filter = "gym"
	FilterSauna   Filter = "sauna"
	FilterTherapy Filter = "therapy"
)

var filterPaths = map[string]Filter{
	"icebath-with-gym":              FilterGym,
	"icebath-with-sauna":            FilterSauna,
	"icebath-with-contrast-therapy": FilterTherapy,
}

var filterTitles = map[Filter]string{
	FilterGym:     "with Gym ",
	FilterSauna:   "with Sauna ",
	FilterTherapy: "with Contrast Therapy ",
}

// ParseFilter accepts the query form (gym, sauna, therapy, all or empty).
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterGym, FilterSauna, FilterTherapy:
		return f, nil
	case "all":
		return FilterAll, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// ParseFilterPath accepts the page path form, e.g. "icebath-with-sauna".
func ParseFilterPath(segment string) (Filter, bool) {
	f, ok := filterPaths[segment]
	return f, ok
}

func (f Filter) Match(l domain.Listing) bool {
	switch f {
	case FilterGym:
		return l.Amenities.HasGym
	case FilterSauna:
		return l.Amenities.HasSauna
	case FilterTherapy:
		return l.Amenities.HasContrastTherapy
	}
	return true
}

// FilterListings keeps source order. The result is never nil.
func FilterListings(in []domain.Listing, f Filter) []domain.Listing {
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// PageTitle gives e.g. "Ice Bath Locations with Sauna in San Diego".
func PageTitle(citySlug string, f Filter) string {
	return "Ice Bath Locations " + filterTitles[f] + "in " + domain.DisplayName(citySlug)
}
