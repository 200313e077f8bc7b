package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"icebath_directory/internal/domain"
)

// DirectoryService is the read facade the HTTP layer and the warmer use.
// Every method returns a usable (possibly empty) result.
type DirectoryService struct {
	src      domain.DirectorySource
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewDirectoryService accepts a nil cache, in which case every call goes to src.
func NewDirectoryService(src domain.DirectorySource, c domain.Cache, ttl time.Duration) *DirectoryService {
	return &DirectoryService{src: src, cache: c, cacheTTL: ttl}
}

// cityKey keys on the file stem a slug resolves to, so "san-diego" and
// "San-Diego" share one entry.
func cityKey(slug string) string { return "city:" + domain.SlugToFileStem(slug) }

// withSlug stamps the requested slug onto a cached city, which may have been
// stored under another spelling.
func withSlug(cd domain.CityData, slug string) domain.CityData {
	listings := make([]domain.Listing, len(cd.Listings))
	for i, l := range cd.Listings {
		l.CitySlug = slug
		listings[i] = l
	}
	cd.CitySlug = slug
	cd.Listings = listings
	return cd
}

// ListCities is the sorted union of country-owned and legacy city file
// stems ("San-Diego", not "san-diego"). Every stem is accepted as a slug.
func (s *DirectoryService) ListCities() []string {
	seen := map[string]struct{}{}
	out := []string{}
	add := func(names []string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for _, c := range s.src.ListCountries() {
		add(s.src.ListCitiesForCountry(c))
	}
	add(s.src.ListLegacyCities())
	sort.Strings(out)
	return out
}

func (s *DirectoryService) ListCountries() []string { return s.src.ListCountries() }

func (s *DirectoryService) ListCitiesForCountry(country string) []string {
	return s.src.ListCitiesForCountry(country)
}

func (s *DirectoryService) GetCountryForCity(citySlug string) *string {
	return s.src.FindCountryForCity(citySlug)
}

// ResolveCountry matches name against the on-disk country names, exact
// match first, then case-insensitively ("usa" finds "USA").
func (s *DirectoryService) ResolveCountry(name string) (string, bool) {
	countries := s.src.ListCountries()
	for _, c := range countries {
		if c == name {
			return c, true
		}
	}
	for _, c := range countries {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// GetCityData resolves a slug country-first with legacy fallback, through
// the cache when one is configured.
func (s *DirectoryService) GetCityData(ctx context.Context, citySlug string) domain.CityData {
	key := cityKey(citySlug)
	if s.cache != nil {
		var cd domain.CityData
		ok, err := s.cache.Get(ctx, key, &cd)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		if ok && err == nil {
			return withSlug(cd, citySlug)
		}
	}

	cd := s.src.GetCity(citySlug)
	if s.cache != nil && len(cd.Listings) > 0 {
		if err := s.cache.Set(ctx, key, cd, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return cd
}

// GetCountry builds the country view; ErrCountryNotFound when no such
// directory exists.
func (s *DirectoryService) GetCountry(ctx context.Context, name string) (domain.CountryData, error) {
	country, ok := s.ResolveCountry(name)
	if !ok {
		return domain.CountryData{}, fmt.Errorf("%q: %w", name, domain.ErrCountryNotFound)
	}
	out := domain.CountryData{CountryName: country, Cities: []domain.CityData{}}
	for _, stem := range s.src.ListCitiesForCountry(country) {
		out.Cities = append(out.Cities, s.GetCityData(ctx, stem))
	}
	return out, nil
}

func (s *DirectoryService) GetAllCitiesData(ctx context.Context) []domain.CityData {
	cities := s.ListCities()
	out := make([]domain.CityData, 0, len(cities))
	for _, c := range cities {
		out = append(out, s.GetCityData(ctx, c))
	}
	return out
}

// Warm reloads one city from disk into the cache, dropping the entry when
// the city has no listings. It reports how many listings were cached.
func (s *DirectoryService) Warm(ctx context.Context, citySlug string) (int, error) {
	if s.cache == nil {
		return 0, fmt.Errorf("warm %s: no cache configured", citySlug)
	}
	key := cityKey(citySlug)
	cd := s.src.GetCity(citySlug)
	if len(cd.Listings) == 0 {
		if err := s.cache.Del(ctx, key); err != nil {
			return 0, fmt.Errorf("evict %s: %w", key, err)
		}
		return 0, nil
	}
	if err := s.cache.Set(ctx, key, cd, int(s.cacheTTL.Seconds())); err != nil {
		return 0, fmt.Errorf("cache %s: %w", key, err)
	}
	return len(cd.Listings), nil
}
