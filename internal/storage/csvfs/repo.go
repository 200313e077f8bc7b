package csvfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"icebath_directory/internal/adapters/observability"
	"icebath_directory/internal/domain"
)

const (
	fileExt      = ".csv"
	countriesSub = "countries"
	legacySub    = "cities"
)

// RowMapper turns one parsed row into a listing for the given city.
type RowMapper func(row domain.Row, citySlug string) domain.Listing

// Repo reads <root>/countries/<Country>/<City>.csv and the legacy
// <root>/cities/<City>.csv layout. It holds no mutable state.
type Repo struct {
	root   string
	mapRow RowMapper
}

func New(root string, mapRow RowMapper) *Repo { return &Repo{root: root, mapRow: mapRow} }

func (r *Repo) countriesDir() string { return filepath.Join(r.root, countriesSub) }
func (r *Repo) legacyDir() string    { return filepath.Join(r.root, legacySub) }

// safeName rejects anything that could escape the data root.
func safeName(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

func readDir(dir string) []fs.DirEntry {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("dir", dir).Msg("data directory does not exist")
		} else {
			log.Warn().Err(err).Str("dir", dir).Msg("read data directory failed")
		}
		return nil
	}
	return ents
}

// ListCountries returns the country directory names as stored on disk, sorted.
func (r *Repo) ListCountries() []string {
	out := []string{}
	for _, e := range readDir(r.countriesDir()) {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func cityStems(dir string) []string {
	out := []string{}
	for _, e := range readDir(dir) {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(out)
	return out
}

func (r *Repo) ListCitiesForCountry(country string) []string {
	if !safeName(country) {
		return []string{}
	}
	return cityStems(filepath.Join(r.countriesDir(), country))
}

func (r *Repo) ListLegacyCities() []string { return cityStems(r.legacyDir()) }

// FindCountryForCity scans countries alphabetically; the first one holding
// the city file wins.
func (r *Repo) FindCountryForCity(citySlug string) *string {
	if !safeName(citySlug) {
		return nil
	}
	stem := domain.SlugToFileStem(citySlug)
	for _, c := range r.ListCountries() {
		s := source{dir: filepath.Join(r.countriesDir(), c)}
		if s.has(stem) {
			name := c
			return &name
		}
	}
	return nil
}

// GetCity resolves a slug country-first, then legacy. A city that cannot
// be found or read comes back with no listings and no country.
func (r *Repo) GetCity(citySlug string) domain.CityData {
	empty := domain.CityData{CitySlug: citySlug, Listings: []domain.Listing{}}
	if !safeName(citySlug) {
		observability.ObserveCityRead("missing")
		return empty
	}

	stem := domain.SlugToFileStem(citySlug)
	src, ok := r.locate(stem)
	if !ok {
		log.Warn().Str("slug", citySlug).Str("file", stem+fileExt).Msg("city data file does not exist")
		observability.ObserveCityRead("missing")
		return empty
	}

	rows, err := readRows(src.path(stem))
	if err != nil {
		log.Error().Err(err).Str("slug", citySlug).Str("path", src.path(stem)).Msg("read city data failed")
		observability.ObserveCityRead("error")
		return empty
	}

	listings := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, r.mapRow(row, citySlug))
	}
	if src.country != nil {
		observability.ObserveCityRead("country")
	} else {
		observability.ObserveCityRead("legacy")
	}
	return domain.CityData{CitySlug: citySlug, Country: src.country, Listings: listings}
}
