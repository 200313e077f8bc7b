package csvfs_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"icebath_directory/internal/app"
)

// recordingCache stores JSON like the Redis adapter and counts key usage.
type recordingCache struct {
	store map[string][]byte
	gets  map[string]int
	hits  int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: map[string][]byte{}, gets: map[string]int{}}
}

func (c *recordingCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets[key]++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *recordingCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *recordingCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func TestWarmFromListCitiesServesLowercaseSlug(t *testing.T) {
	repo, root := newRepo(t)
	write(t, root, "countries/USA/San-Diego.csv", header+"Polar Plunge,https://example.com,Yes,4.8 (56)\n")

	cache := newRecordingCache()
	d := app.NewDirectoryService(repo, cache, time.Minute)
	ctx := context.Background()

	for _, city := range d.ListCities() {
		if _, err := d.Warm(ctx, city); err != nil {
			t.Fatalf("warm %s: %v", city, err)
		}
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected one warmed entry, got %d", len(cache.store))
	}

	cd := d.GetCityData(ctx, "san-diego")
	if cache.hits != 1 {
		t.Fatalf("expected a cache hit, gets=%v", cache.gets)
	}
	if len(cache.store) != 1 {
		t.Fatalf("request should not add a second entry, got %d", len(cache.store))
	}
	if cd.CitySlug != "san-diego" || cd.Country == nil || *cd.Country != "USA" {
		t.Fatalf("unexpected city: %+v", cd)
	}
	if len(cd.Listings) != 1 || cd.Listings[0].CitySlug != "san-diego" {
		t.Fatalf("listings: %+v", cd.Listings)
	}
}
