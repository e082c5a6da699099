package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
//
// Fetch failures are part of the returned state (200 with "error" set);
// only malformed requests produce an HTTP error.
func RegisterRoutes(app *fiber.App, store *dashboard.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(store.State())
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(store.Present())
	})

	v1.Post("/weather/search", func(c *fiber.Ctx) error {
		city := c.Query("city")
		if common.Blank(city) {
			return c.SendStatus(fiber.StatusNoContent)
		}

		_ = store.FetchByCity(c.UserContext(), city)
		return c.JSON(store.State())
	})

	v1.Post("/weather/coords", func(c *fiber.Ctx) error {
		q, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		_ = store.FetchByCoords(c.UserContext(), *q.Lat, *q.Lon)
		return c.JSON(store.State())
	})

	v1.Post("/preferences/unit/toggle", func(c *fiber.Ctx) error {
		store.ToggleUnit()
		return c.JSON(store.Preferences())
	})

	v1.Post("/preferences/theme/toggle", func(c *fiber.Ctx) error {
		store.ToggleTheme()
		return c.JSON(store.Preferences())
	})
}

// coordsQuery holds query parameters for a coordinate fetch.
type coordsQuery struct {
	Lat *float64 `validate:"required,gte=-90,lte=90"`
	Lon *float64 `validate:"required,gte=-180,lte=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	var err error
	if q.Lat, err = parseFloat(c.Query("lat")); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloat(c.Query("lon")); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// parseFloat returns nil for an empty value so that "required" can report it.
func parseFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
