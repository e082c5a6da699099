package weather

import (
	"math"
	"time"
)

const (
	// HourlyPoints is 24 hours of the provider's 3-hour cadence.
	HourlyPoints = 8
	// MaxDays caps the daily summary.
	MaxDays = 7
)

// Normalizer turns raw provider payloads into a ViewModel.
// TZ decides which calendar date a forecast sample belongs to.
type Normalizer struct {
	TZ *time.Location
}

// NewNormalizer creates a Normalizer grouping days in tz (time.Local if nil).
func NewNormalizer(tz *time.Location) *Normalizer {
	if tz == nil {
		tz = time.Local
	}
	return &Normalizer{TZ: tz}
}

// Build assembles the view model for a successful fetch sequence.
// air may be nil; the view model then carries no air quality.
func (n *Normalizer) Build(lat, lon float64, cur CurrentPayload, fc ForecastPayload, air *AirQuality) ViewModel {
	return ViewModel{
		Location: Location{
			Name:    cur.Name,
			Country: cur.Sys.Country,
			Lat:     lat,
			Lon:     lon,
		},
		Current:    Current(cur),
		Hourly:     Hourly(fc.List),
		Daily:      Daily(fc.List, n.TZ),
		AirQuality: air,
	}
}

// Current normalizes the current-conditions payload.
func Current(p CurrentPayload) CurrentConditions {
	cond := firstCondition(p.Weather)
	return CurrentConditions{
		Temp:        Round(p.Main.Temp),
		FeelsLike:   Round(p.Main.FeelsLike),
		Humidity:    p.Main.Humidity,
		Pressure:    p.Main.Pressure,
		WindSpeed:   p.Wind.Speed,
		WindDeg:     p.Wind.Deg,
		Visibility:  p.Visibility,
		Description: cond.Description,
		Main:        cond.Main,
		Icon:        Icon(cond.Icon),
		Sunrise:     p.Sys.Sunrise,
		Sunset:      p.Sys.Sunset,
		Dt:          p.Dt,
	}
}

// Hourly returns the first HourlyPoints samples of the feed.
func Hourly(feed []ForecastSample) []HourlyPoint {
	if len(feed) > HourlyPoints {
		feed = feed[:HourlyPoints]
	}

	out := make([]HourlyPoint, 0, len(feed))
	for _, s := range feed {
		cond := firstCondition(s.Weather)
		out = append(out, HourlyPoint{
			Dt:          s.Dt,
			Temp:        Round(s.Main.Temp),
			Icon:        Icon(cond.Icon),
			Description: cond.Description,
		})
	}
	return out
}

// Daily groups the feed by calendar date in tz, keeping the order in which
// dates first appear, and returns at most MaxDays entries.
// Icon and description come from each day's first sample.
func Daily(feed []ForecastSample, tz *time.Location) []DailyPoint {
	if tz == nil {
		tz = time.Local
	}

	type dayKey string
	type day struct {
		first ForecastSample
		temps []float64
	}

	var (
		order []dayKey
		days  = make(map[dayKey]*day)
	)

	for _, s := range feed {
		k := dayKey(time.Unix(s.Dt, 0).In(tz).Format("2006-01-02"))
		d, ok := days[k]
		if !ok {
			d = &day{first: s}
			days[k] = d
			order = append(order, k)
		}
		d.temps = append(d.temps, s.Main.Temp)
	}

	if len(order) > MaxDays {
		order = order[:MaxDays]
	}

	out := make([]DailyPoint, 0, len(order))
	for _, k := range order {
		d := days[k]
		lo, hi := d.temps[0], d.temps[0]
		for _, t := range d.temps[1:] {
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
		}

		cond := firstCondition(d.first.Weather)
		out = append(out, DailyPoint{
			Dt:          d.first.Dt,
			TempMin:     Round(lo),
			TempMax:     Round(hi),
			Icon:        Icon(cond.Icon),
			Description: cond.Description,
		})
	}
	return out
}

// AirQualityFrom extracts the first air pollution entry, or nil if none.
func AirQualityFrom(p AirPollutionPayload) *AirQuality {
	if len(p.List) == 0 {
		return nil
	}
	first := p.List[0]
	return &AirQuality{
		AQI:        first.Main.AQI,
		Components: first.Components,
	}
}

// Round rounds to the nearest integer with halves going up (-2.5 -> -2).
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}
