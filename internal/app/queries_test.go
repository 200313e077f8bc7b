package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"icebath_directory/internal/app"
	"icebath_directory/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	countries map[string][]string
	legacy    []string
	cities    map[string]domain.CityData
	reads     int
}

func (f *fakeSource) ListCountries() []string {
	out := []string{}
	for _, c := range []string{"France", "Israel", "USA"} {
		if _, ok := f.countries[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
func (f *fakeSource) ListCitiesForCountry(c string) []string { return f.countries[c] }
func (f *fakeSource) ListLegacyCities() []string             { return f.legacy }
func (f *fakeSource) FindCountryForCity(slug string) *string {
	for _, c := range f.ListCountries() {
		for _, city := range f.countries[c] {
			if city == domain.SlugToFileStem(slug) {
				name := c
				return &name
			}
		}
	}
	return nil
}
func (f *fakeSource) GetCity(slug string) domain.CityData {
	f.reads++
	if cd, ok := f.cities[slug]; ok {
		return cd
	}
	return domain.CityData{CitySlug: slug, Listings: []domain.Listing{}}
}

type fakeCache struct {
	store map[string]any
	dels  []string
	fail  bool
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.fail {
		return false, errors.New("cache down")
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*domain.CityData) = v.(domain.CityData)
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.fail {
		return errors.New("cache down")
	}
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func newSource() *fakeSource {
	usa := "USA"
	return &fakeSource{
		countries: map[string][]string{
			"France": {"Paris"},
			"USA":    {"New-York", "San-Diego"},
		},
		legacy: []string{"Austin", "Paris", "San-Diego"},
		cities: map[string]domain.CityData{
			"san-diego": {CitySlug: "san-diego", Country: &usa, Listings: []domain.Listing{{Name: "Polar Plunge", CitySlug: "san-diego"}}},
		},
	}
}

// ---- tests ----

func TestListCities_UnionDedupSorted(t *testing.T) {
	d := app.NewDirectoryService(newSource(), nil, time.Minute)
	want := []string{"Austin", "New-York", "Paris", "San-Diego"}
	for i := 0; i < 2; i++ {
		if got := d.ListCities(); !reflect.DeepEqual(got, want) {
			t.Fatalf("call %d: got %v want %v", i, got, want)
		}
	}
}

func TestGetCountryForCity(t *testing.T) {
	d := app.NewDirectoryService(newSource(), nil, time.Minute)
	if c := d.GetCountryForCity("Paris"); c == nil || *c != "France" {
		t.Fatalf("Paris: %v", c)
	}
	if c := d.GetCountryForCity("austin"); c != nil {
		t.Fatalf("legacy-only city should have no country, got %q", *c)
	}
}

func TestGetCityData_CacheMissThenHit(t *testing.T) {
	src := newSource()
	cache := &fakeCache{}
	d := app.NewDirectoryService(src, cache, 10*time.Minute)

	cd := d.GetCityData(context.Background(), "san-diego")
	if len(cd.Listings) != 1 || cd.Listings[0].Name != "Polar Plunge" {
		t.Fatalf("unexpected city: %+v", cd)
	}

	// mutate the source to prove the second read is served from cache
	src.cities["san-diego"] = domain.CityData{CitySlug: "san-diego", Listings: []domain.Listing{{Name: "SHOULD NOT SEE THIS"}}}

	cd2 := d.GetCityData(context.Background(), "san-diego")
	if cd2.Listings[0].Name != "Polar Plunge" {
		t.Fatalf("expected cached listing, got %q", cd2.Listings[0].Name)
	}
	if src.reads != 1 {
		t.Fatalf("expected one source read, got %d", src.reads)
	}
}

func TestGetCityData_EmptyResultNotCached(t *testing.T) {
	cache := &fakeCache{}
	d := app.NewDirectoryService(newSource(), cache, time.Minute)

	cd := d.GetCityData(context.Background(), "nonexistent-city")
	if cd.CitySlug != "nonexistent-city" || cd.Country != nil || cd.Listings == nil || len(cd.Listings) != 0 {
		t.Fatalf("unexpected: %+v", cd)
	}
	if len(cache.store) != 0 {
		t.Fatalf("empty city should not be cached: %v", cache.store)
	}
}

func TestGetCityData_CacheFailureFallsBackToSource(t *testing.T) {
	d := app.NewDirectoryService(newSource(), &fakeCache{fail: true}, time.Minute)
	cd := d.GetCityData(context.Background(), "san-diego")
	if len(cd.Listings) != 1 {
		t.Fatalf("expected source data despite cache errors: %+v", cd)
	}
}

func TestGetCountry(t *testing.T) {
	d := app.NewDirectoryService(newSource(), nil, time.Minute)

	cd, err := d.GetCountry(context.Background(), "usa")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cd.CountryName != "USA" || len(cd.Cities) != 2 || cd.Cities[0].CitySlug != "New-York" {
		t.Fatalf("unexpected country: %+v", cd)
	}

	if _, err := d.GetCountry(context.Background(), "Atlantis"); !errors.Is(err, domain.ErrCountryNotFound) {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestGetAllCitiesData(t *testing.T) {
	d := app.NewDirectoryService(newSource(), nil, time.Minute)
	all := d.GetAllCitiesData(context.Background())
	if len(all) != 4 {
		t.Fatalf("expected 4 cities, got %d", len(all))
	}
	for _, cd := range all {
		if cd.Listings == nil {
			t.Fatalf("%s: nil listings", cd.CitySlug)
		}
	}
}

func TestWarm(t *testing.T) {
	cache := &fakeCache{}
	d := app.NewDirectoryService(newSource(), cache, time.Minute)

	n, err := d.Warm(context.Background(), "san-diego")
	if err != nil || n != 1 {
		t.Fatalf("warm san-diego: n=%d err=%v", n, err)
	}
	if _, ok := cache.store["city:San-Diego"]; !ok {
		t.Fatalf("expected cached entry, store=%v", cache.store)
	}

	n, err = d.Warm(context.Background(), "austin")
	if err != nil || n != 0 {
		t.Fatalf("warm austin: n=%d err=%v", n, err)
	}
	if len(cache.dels) != 1 || cache.dels[0] != "city:Austin" {
		t.Fatalf("expected eviction of empty city, dels=%v", cache.dels)
	}

	if _, err := app.NewDirectoryService(newSource(), nil, time.Minute).Warm(context.Background(), "x"); err == nil {
		t.Fatalf("expected error without cache")
	}
}

func TestGetCityData_SlugSpellingsShareCacheEntry(t *testing.T) {
	src := newSource()
	cache := &fakeCache{}
	d := app.NewDirectoryService(src, cache, time.Minute)

	d.GetCityData(context.Background(), "san-diego")
	cd := d.GetCityData(context.Background(), "San-Diego")
	if src.reads != 1 {
		t.Fatalf("expected one source read, got %d", src.reads)
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected a single cache entry, store=%v", cache.store)
	}
	if cd.CitySlug != "San-Diego" || cd.Listings[0].CitySlug != "San-Diego" {
		t.Fatalf("cached city should carry the requested slug: %+v", cd)
	}
	if stored := cache.store["city:San-Diego"].(domain.CityData); stored.Listings[0].CitySlug != "san-diego" {
		t.Fatalf("stored entry was mutated: %+v", stored)
	}
}
