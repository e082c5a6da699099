package weather

import (
	"context"
	"errors"
)

// User-facing failures. The message of each is what the dashboard shows.
var (
	ErrCityNotFound   = errors.New("City not found. Please try another search.")
	ErrLookupFailed   = errors.New("Failed to find city")
	ErrCurrentFailed  = errors.New("Failed to fetch weather data")
	ErrForecastFailed = errors.New("Failed to fetch forecast")
)

// GeoResult is one match of a free-text location lookup.
type GeoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Condition is the provider's weather code block.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentPayload mirrors the current-conditions response.
type CurrentPayload struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64     `json:"visibility"`
	Weather    []Condition `json:"weather"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// ForecastSample is one entry of the 3-hour forecast feed.
type ForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
}

// ForecastPayload mirrors the 5 day / 3 hour forecast response.
type ForecastPayload struct {
	List []ForecastSample `json:"list"`
}

// AirPollutionEntry is one element of the air pollution list.
type AirPollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components Components `json:"components"`
}

// AirPollutionPayload mirrors the air pollution response.
type AirPollutionPayload struct {
	List []AirPollutionEntry `json:"list"`
}

// Geocoder resolves a city name to candidate coordinates, best match first.
type Geocoder interface {
	Geocode(ctx context.Context, city string) ([]GeoResult, error)
}

// Source abstracts the weather provider (OpenWeatherMap).
// All temperatures are returned in metric units.
type Source interface {
	Current(ctx context.Context, lat, lon float64) (CurrentPayload, error)
	Forecast(ctx context.Context, lat, lon float64) (ForecastPayload, error)
	AirPollution(ctx context.Context, lat, lon float64) (AirPollutionPayload, error)
}
