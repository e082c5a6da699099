package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// geocoder keeps its API key in a package variable.
var googleKeyMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder creates a geocoder using the given Google API key.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey: apiKey,
		lookup: geocoder.Geocoding,
	}
}

// Geocode resolves city to at most one result. A lookup with no match
// returns an empty slice rather than an error.
func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) ([]weather.GeoResult, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google geocoder api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	googleKeyMu.Lock()
	geocoder.ApiKey = g.apiKey
	loc, err := g.lookup(geocoder.Address{City: city})
	googleKeyMu.Unlock()

	if err != nil {
		if common.HasAny(err.Error(), "ZERO_RESULTS", "no results") {
			return nil, nil
		}
		return nil, fmt.Errorf("google geocode %q: %w", city, err)
	}

	return []weather.GeoResult{{
		Name: city,
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
	}}, nil
}
