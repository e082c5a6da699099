package dashboard

import (
	"errors"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// userError reduces err to the message shown to the user.
func userError(err error) error {
	for _, known := range []error{
		weather.ErrCityNotFound,
		weather.ErrLookupFailed,
		weather.ErrCurrentFailed,
		weather.ErrForecastFailed,
	} {
		if errors.Is(err, known) {
			return known
		}
	}
	return errors.New("An error occurred")
}
