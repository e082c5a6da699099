package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-dashboard/internal/prefs"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Status is the coarse lifecycle of the store.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSettled Status = "settled"
)

// State is a consistent snapshot of the store.
type State struct {
	Weather *weather.ViewModel `json:"weatherData"`
	Loading bool               `json:"loading"`
	Error   string             `json:"error,omitempty"`
	Unit    prefs.Unit         `json:"unit"`
	Theme   prefs.Theme        `json:"theme"`
}

// Status derives the lifecycle state from the snapshot.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Weather == nil && s.Error == "":
		return StatusIdle
	default:
		return StatusSettled
	}
}

// Store is the single source of truth for the dashboard: the current view
// model, fetch progress, and the user's unit/theme preferences.
//
// Every fetch takes a token; only the most recently started fetch may change
// the view model, the error or the loading flag. Older fetches still run to
// completion but their results are dropped.
type Store struct {
	geocoder   weather.Geocoder
	source     weather.Source
	normalizer *weather.Normalizer
	persister  *prefs.Persister

	latest atomic.Uint64

	mu      sync.RWMutex
	model   *weather.ViewModel
	loading bool
	errMsg  string
	prefs   prefs.Preferences
}

// NewStore creates a Store. persister may be nil, in which case preference
// changes stay in memory only.
func NewStore(geocoder weather.Geocoder, source weather.Source, normalizer *weather.Normalizer, initial prefs.Preferences, persister *prefs.Persister) *Store {
	if normalizer == nil {
		normalizer = weather.NewNormalizer(nil)
	}
	return &Store{
		geocoder:   geocoder,
		source:     source,
		normalizer: normalizer,
		persister:  persister,
		prefs:      initial,
	}
}

// State returns a snapshot of the store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Weather: s.model,
		Loading: s.loading,
		Error:   s.errMsg,
		Unit:    s.prefs.Unit,
		Theme:   s.prefs.Theme,
	}
}

// Preferences returns the current unit and theme.
func (s *Store) Preferences() prefs.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// FetchByCity geocodes name and loads weather for the first match.
// Blank input is ignored. Failures are recorded in the store's error and also
// returned; the previous view model is kept.
func (s *Store) FetchByCity(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	tok, id := s.begin()
	log.Printf("DEBUG: dashboard: fetch %s: geocoding %q", id, name)

	results, err := s.geocoder.Geocode(ctx, name)
	if err != nil {
		log.Printf("dashboard: fetch %s: geocoding %q failed: %v", id, name, err)
		s.fail(tok, weather.ErrLookupFailed)
		return fmt.Errorf("%w: %v", weather.ErrLookupFailed, err)
	}
	if len(results) == 0 {
		log.Printf("dashboard: fetch %s: no location matches %q", id, name)
		s.fail(tok, weather.ErrCityNotFound)
		return weather.ErrCityNotFound
	}

	first := results[0]
	return s.fetchCoords(ctx, tok, id, first.Lat, first.Lon)
}

// FetchByCoords loads weather for the given coordinates. Current conditions
// and forecast are both required; air quality is optional.
func (s *Store) FetchByCoords(ctx context.Context, lat, lon float64) error {
	tok, id := s.begin()
	return s.fetchCoords(ctx, tok, id, lat, lon)
}

func (s *Store) fetchCoords(ctx context.Context, tok uint64, id string, lat, lon float64) error {
	defer s.settle(tok)

	log.Printf("DEBUG: dashboard: fetch %s: loading weather for %.4f,%.4f", id, lat, lon)

	var (
		cur weather.CurrentPayload
		fc  weather.ForecastPayload
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.source.Current(gctx, lat, lon)
		if err != nil {
			return fmt.Errorf("%w: %v", weather.ErrCurrentFailed, err)
		}
		cur = p
		return nil
	})
	g.Go(func() error {
		p, err := s.source.Forecast(gctx, lat, lon)
		if err != nil {
			return fmt.Errorf("%w: %v", weather.ErrForecastFailed, err)
		}
		fc = p
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("ERROR: dashboard: fetch %s: %v", id, err)
		s.fail(tok, userError(err))
		return err
	}

	air := s.airQuality(ctx, id, lat, lon)
	vm := s.normalizer.Build(lat, lon, cur, fc, air)

	s.mu.Lock()
	applied := s.isLatest(tok)
	if applied {
		s.model = &vm
		s.errMsg = ""
	}
	s.mu.Unlock()

	if !applied {
		log.Printf("dashboard: fetch %s: superseded, discarding result", id)
		return nil
	}
	log.Printf("INFO: dashboard: fetch %s: loaded %s, %s", id, vm.Location.Name, vm.Location.Country)
	return nil
}

// airQuality never fails the fetch; any problem yields nil.
func (s *Store) airQuality(ctx context.Context, id string, lat, lon float64) *weather.AirQuality {
	p, err := s.source.AirPollution(ctx, lat, lon)
	if err != nil {
		log.Printf("dashboard: fetch %s: air quality unavailable: %v", id, err)
		return nil
	}
	return weather.AirQualityFrom(p)
}

// begin claims a new token and moves the store to loading.
func (s *Store) begin() (uint64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok := s.latest.Inc()
	s.loading = true
	s.errMsg = ""
	return tok, uuid.NewString()
}

func (s *Store) fail(tok uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isLatest(tok) {
		return
	}
	s.errMsg = err.Error()
	s.loading = false
}

func (s *Store) settle(tok uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isLatest(tok) {
		s.loading = false
	}
}

func (s *Store) isLatest(tok uint64) bool {
	return s.latest.Load() == tok
}

// ToggleUnit flips the temperature unit and schedules it for persistence.
func (s *Store) ToggleUnit() prefs.Unit {
	s.mu.Lock()
	s.prefs.Unit = s.prefs.Unit.Toggle()
	u := s.prefs.Unit
	s.mu.Unlock()

	s.persist(prefs.UnitKey, string(u))
	return u
}

// ToggleTheme flips the theme and schedules it for persistence.
func (s *Store) ToggleTheme() prefs.Theme {
	s.mu.Lock()
	s.prefs.Theme = s.prefs.Theme.Toggle()
	t := s.prefs.Theme
	s.mu.Unlock()

	s.persist(prefs.ThemeKey, string(t))
	return t
}

func (s *Store) persist(key, value string) {
	if s.persister != nil {
		s.persister.Schedule(key, value)
	}
}

// ConvertTemp converts a Celsius value into the unit selected right now.
func (s *Store) ConvertTemp(celsius float64) float64 {
	return prefs.ConvertTemp(s.Preferences().Unit, celsius)
}
