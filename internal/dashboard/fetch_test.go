package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/atomic"

	"github.com/i474232898/weather-dashboard/internal/prefs"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// openWeatherServer fails current conditions for lat=10 while a forecast for
// the same place is still being served, so the forecast request is abandoned.
func openWeatherServer(t *testing.T, forecastHits *atomic.Int32) *httptest.Server {
	t.Helper()
	inflight := make(chan struct{}, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "10" {
			select {
			case <-inflight:
			case <-time.After(time.Second):
			}
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"name":"Lagos","dt":1700000000,"main":{"temp":30},
			"weather":[{"main":"Clear","description":"clear sky","icon":"01d"}],"sys":{"country":"NG"}}`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		forecastHits.Inc()
		if r.URL.Query().Get("lat") == "10" {
			inflight <- struct{}{}
			select {
			case <-r.Context().Done():
				return
			case <-time.After(time.Second):
			}
		}
		w.Write([]byte(`{"list":[{"dt":1700006400,"main":{"temp":29},"weather":[{"icon":"02d"}]}]}`))
	})
	mux.HandleFunc("/data/2.5/air_pollution", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// A failing current-conditions call cancels the concurrent forecast call;
// repeated cancellations must not trip the forecast circuit.
func TestFetchAfterCurrentFailuresReachesForecast(t *testing.T) {
	hits := atomic.NewInt32(0)
	srv := openWeatherServer(t, hits)

	client := providers.NewOpenWeatherClient(srv.Client(), "key", srv.URL, providers.DefaultBreaker)
	s := NewStore(&fakeGeocoder{}, client, weather.NewNormalizer(time.UTC),
		prefs.Preferences{Unit: prefs.Celsius, Theme: prefs.Light}, nil)
	ctx := context.Background()

	for i := 0; i < int(providers.DefaultBreaker.ConsecutiveFailures)+1; i++ {
		if err := s.FetchByCoords(ctx, 10, 10); !errors.Is(err, weather.ErrCurrentFailed) {
			t.Fatalf("fetch %d: expected current failure, got %v", i, err)
		}
		// Keep the current-conditions circuit closed between fetches.
		if _, err := client.Current(ctx, 0, 0); err != nil {
			t.Fatalf("current: %v", err)
		}
	}

	before := hits.Load()
	if err := s.FetchByCoords(ctx, 20, 20); err != nil {
		t.Fatalf("expected healthy fetch, got %v", err)
	}
	if hits.Load() != before+1 {
		t.Errorf("forecast endpoint not reached: %d calls before, %d after", before, hits.Load())
	}

	st := s.State()
	if st.Weather == nil || st.Weather.Location.Name != "Lagos" || st.Error != "" {
		t.Fatalf("unexpected state: %+v", st)
	}
}
