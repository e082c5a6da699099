package dashboard

import (
	"github.com/i474232898/weather-dashboard/internal/prefs"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// View is what the panels render: the same data as the view model with
// temperatures already converted to the selected unit and rounded.
type View struct {
	Status Status      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Unit   prefs.Unit  `json:"unit"`
	Symbol string      `json:"symbol"`
	Theme  prefs.Theme `json:"theme"`

	Location *weather.Location `json:"location,omitempty"`
	Current  *CurrentView      `json:"current,omitempty"`
	Hourly   []HourView        `json:"hourly,omitempty"`
	Daily    []DayView         `json:"daily,omitempty"`
	Chart    []ChartPoint      `json:"chart,omitempty"`
	Air      *AirView          `json:"airQuality,omitempty"`
}

// CurrentView is the converted current conditions panel.
type CurrentView struct {
	Temp         float64 `json:"temp"`
	FeelsLike    float64 `json:"feels_like"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	Humidity     float64 `json:"humidity"`
	Pressure     float64 `json:"pressure"`
	WindSpeed    float64 `json:"wind_speed"`
	WindDeg      float64 `json:"wind_deg"`
	VisibilityKm float64 `json:"visibility_km"`
	Sunrise      int64   `json:"sunrise"`
	Sunset       int64   `json:"sunset"`
}

// HourView is one converted hourly entry.
type HourView struct {
	Dt   int64   `json:"dt"`
	Temp float64 `json:"temp"`
	Icon string  `json:"icon"`
}

// DayView is one converted daily entry.
type DayView struct {
	Dt          int64   `json:"dt"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// ChartPoint feeds the forecast chart.
type ChartPoint struct {
	Dt  int64   `json:"dt"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// AirView is the air quality panel.
type AirView struct {
	AQI   int     `json:"aqi"`
	Label string  `json:"label"`
	PM2_5 float64 `json:"pm2_5"`
}

// Present projects the current state for rendering. Conversion uses the unit
// at the time of the call; nothing converted is stored.
func (s *Store) Present() View {
	st := s.State()
	return present(st)
}

func present(st State) View {
	conv := func(c float64) float64 {
		return weather.Round(prefs.ConvertTemp(st.Unit, c))
	}

	v := View{
		Status: st.Status(),
		Error:  st.Error,
		Unit:   st.Unit,
		Symbol: st.Unit.Symbol(),
		Theme:  st.Theme,
	}

	vm := st.Weather
	if vm == nil {
		return v
	}

	loc := vm.Location
	v.Location = &loc
	v.Current = &CurrentView{
		Temp:         conv(vm.Current.Temp),
		FeelsLike:    conv(vm.Current.FeelsLike),
		Description:  vm.Current.Description,
		Icon:         vm.Current.Icon,
		Humidity:     vm.Current.Humidity,
		Pressure:     vm.Current.Pressure,
		WindSpeed:    vm.Current.WindSpeed,
		WindDeg:      vm.Current.WindDeg,
		VisibilityKm: vm.Current.Visibility / 1000,
		Sunrise:      vm.Current.Sunrise,
		Sunset:       vm.Current.Sunset,
	}

	for _, h := range vm.Hourly {
		v.Hourly = append(v.Hourly, HourView{Dt: h.Dt, Temp: conv(h.Temp), Icon: h.Icon})
	}

	for _, d := range vm.Daily {
		v.Daily = append(v.Daily, DayView{
			Dt:          d.Dt,
			Min:         conv(d.TempMin),
			Max:         conv(d.TempMax),
			Icon:        d.Icon,
			Description: d.Description,
		})
		lo := prefs.ConvertTemp(st.Unit, d.TempMin)
		hi := prefs.ConvertTemp(st.Unit, d.TempMax)
		v.Chart = append(v.Chart, ChartPoint{
			Dt:  d.Dt,
			Min: weather.Round(lo),
			Max: weather.Round(hi),
			Avg: weather.Round((lo + hi) / 2),
		})
	}

	if aq := vm.AirQuality; aq != nil {
		v.Air = &AirView{
			AQI:   aq.AQI,
			Label: weather.AQILabel(aq.AQI),
			PM2_5: aq.Components.PM2_5,
		}
	}
	return v
}
