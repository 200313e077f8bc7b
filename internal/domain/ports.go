package domain

import (
	"context"
	"errors"
)

var ErrCountryNotFound = errors.New("country not found")

// DirectorySource is the read side over the data root. Implementations
// never fail: a missing or unreadable resource yields an empty result.
type DirectorySource interface {
	ListCountries() []string
	ListCitiesForCountry(country string) []string
	ListLegacyCities() []string
	FindCountryForCity(citySlug string) *string
	GetCity(citySlug string) CityData
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
