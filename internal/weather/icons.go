package weather

// DefaultIcon is shown for codes outside the provider's documented set.
const DefaultIcon = "☀️"

// Icon maps a provider icon code (e.g. "10n") to its display glyph.
// Unknown codes map to DefaultIcon.
func Icon(code string) string {
	switch code {
	case "01d":
		return "☀️"
	case "01n":
		return "🌙"
	case "02d":
		return "⛅"
	case "02n", "03d", "03n", "04d", "04n":
		return "☁️"
	case "09d", "09n", "10n":
		return "🌧️"
	case "10d":
		return "🌦️"
	case "11d", "11n":
		return "⛈️"
	case "13d", "13n":
		return "❄️"
	case "50d", "50n":
		return "🌫️"
	default:
		return DefaultIcon
	}
}

// firstCondition returns the primary condition block, or a zero value when
// the provider sent none.
func firstCondition(items []Condition) Condition {
	if len(items) == 0 {
		return Condition{}
	}
	return items[0]
}
