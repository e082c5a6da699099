package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherURL is the public OpenWeatherMap API root.
const DefaultOpenWeatherURL = "https://api.openweathermap.org"

// OpenWeatherClient implements weather.Geocoder and weather.Source for OpenWeatherMap.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client

	geoCircuit      *gobreaker.CircuitBreaker
	currentCircuit  *gobreaker.CircuitBreaker
	forecastCircuit *gobreaker.CircuitBreaker
	airCircuit      *gobreaker.CircuitBreaker
}

// NewOpenWeatherClient creates a client. An empty baseURL selects DefaultOpenWeatherURL.
func NewOpenWeatherClient(client *http.Client, apiKey, baseURL string, breaker BreakerConfig) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherClient{
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		client:          client,
		geoCircuit:      newBreaker("openweather-geo", breaker),
		currentCircuit:  newBreaker("openweather-current", breaker),
		forecastCircuit: newBreaker("openweather-forecast", breaker),
		airCircuit:      newBreaker("openweather-air", breaker),
	}
}

// Geocode resolves a city name; only the best match is requested.
func (c *OpenWeatherClient) Geocode(ctx context.Context, city string) ([]weather.GeoResult, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "1")

	var results []weather.GeoResult
	if err := c.get(ctx, c.geoCircuit, "/geo/1.0/direct", values, &results); err != nil {
		return nil, fmt.Errorf("openweather geocode %q: %w", city, err)
	}
	return results, nil
}

// Current fetches current conditions in metric units.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (weather.CurrentPayload, error) {
	var payload weather.CurrentPayload
	if err := c.get(ctx, c.currentCircuit, "/data/2.5/weather", coords(lat, lon, true), &payload); err != nil {
		return weather.CurrentPayload{}, fmt.Errorf("openweather current: %w", err)
	}
	return payload, nil
}

// Forecast fetches the 5 day / 3 hour forecast in metric units.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	var payload weather.ForecastPayload
	if err := c.get(ctx, c.forecastCircuit, "/data/2.5/forecast", coords(lat, lon, true), &payload); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("openweather forecast: %w", err)
	}
	return payload, nil
}

// AirPollution fetches the current air pollution reading.
func (c *OpenWeatherClient) AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollutionPayload, error) {
	var payload weather.AirPollutionPayload
	if err := c.get(ctx, c.airCircuit, "/data/2.5/air_pollution", coords(lat, lon, false), &payload); err != nil {
		return weather.AirPollutionPayload{}, fmt.Errorf("openweather air pollution: %w", err)
	}
	return payload, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, cb *gobreaker.CircuitBreaker, path string, values url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}
	values.Set("appid", c.apiKey)

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	return getJSON(ctx, c.client, cb, u, out)
}

func coords(lat, lon float64, metric bool) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if metric {
		values.Set("units", "metric")
	}
	return values
}
