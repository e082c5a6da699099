package prefs

import (
	"context"
	"log"
	"time"
)

// Storage keys.
const (
	UnitKey  = "weather-unit"
	ThemeKey = "weather-theme"
)

// Unit is the temperature display unit.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool { return u == Celsius || u == Fahrenheit }

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Celsius {
		return Fahrenheit
	}
	return Celsius
}

// Symbol returns the display suffix for u.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Theme is the color theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == Light || t == Dark }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Preferences are the two user settings that survive a restart.
type Preferences struct {
	Unit  Unit  `json:"unit"`
	Theme Theme `json:"theme"`
}

// DefaultTheme is dark from 18:00 to 05:59 local time.
func DefaultTheme(now time.Time) Theme {
	if h := now.Hour(); h >= 18 || h < 6 {
		return Dark
	}
	return Light
}

// Defaults returns the preferences used when nothing is stored.
func Defaults(now time.Time) Preferences {
	return Preferences{Unit: Celsius, Theme: DefaultTheme(now)}
}

// Reader is the read side of a key-value store.
type Reader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Load reads stored preferences. Missing keys, unknown values and read
// errors all fall back to Defaults(now).
func Load(ctx context.Context, kv Reader, now time.Time) Preferences {
	p := Defaults(now)
	if kv == nil {
		return p
	}

	if v, ok := read(ctx, kv, UnitKey); ok && Unit(v).Valid() {
		p.Unit = Unit(v)
	}
	if v, ok := read(ctx, kv, ThemeKey); ok && Theme(v).Valid() {
		p.Theme = Theme(v)
	}
	return p
}

func read(ctx context.Context, kv Reader, key string) (string, bool) {
	v, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("prefs: read %s failed, using default: %v", key, err)
		return "", false
	}
	return v, ok
}

// ConvertTemp converts a Celsius value for display in unit.
func ConvertTemp(unit Unit, celsius float64) float64 {
	if unit == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}
