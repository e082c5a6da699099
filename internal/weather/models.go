package weather

// Location is the place a view model was built for.
// Lat/Lon are the requested coordinates; Name/Country come from the provider.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions holds the latest observation. Temperatures are Celsius.
type CurrentConditions struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Visibility  float64 `json:"visibility"`
	Description string  `json:"description"`
	Main        string  `json:"main"`
	Icon        string  `json:"icon"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`
	Dt          int64   `json:"dt"`
}

// HourlyPoint is one 3-hour forecast sample.
type HourlyPoint struct {
	Dt          int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// DailyPoint summarises every forecast sample sharing a calendar date.
type DailyPoint struct {
	Dt          int64   `json:"dt"` // first sample of the day
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Components are pollutant concentrations in µg/m³.
type Components struct {
	PM2_5 float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	NO2   float64 `json:"no2"`
	O3    float64 `json:"o3"`
	CO    float64 `json:"co"`
}

// AirQuality carries the 1-5 air quality index and its components.
type AirQuality struct {
	AQI        int        `json:"aqi"`
	Components Components `json:"components"`
}

// ViewModel is the unified, UI-ready snapshot built from one fetch sequence.
// It is replaced as a whole, never patched field by field.
type ViewModel struct {
	Location   Location          `json:"location"`
	Current    CurrentConditions `json:"current"`
	Hourly     []HourlyPoint     `json:"hourly"`
	Daily      []DailyPoint      `json:"daily"`
	AirQuality *AirQuality       `json:"airQuality"`
}

var aqiLabels = [...]string{"", "Good", "Fair", "Moderate", "Poor", "Very Poor"}

// AQILabel returns the human label for an air quality index.
func AQILabel(aqi int) string {
	if aqi < 1 || aqi >= len(aqiLabels) {
		return "Unknown"
	}
	return aqiLabels[aqi]
}
