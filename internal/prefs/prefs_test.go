package prefs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeKV struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func (p *Persister) queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func at(hour int) time.Time {
	return time.Date(2024, 5, 1, hour, 0, 0, 0, time.Local)
}

func TestDefaultTheme(t *testing.T) {
	cases := map[int]Theme{0: Dark, 5: Dark, 6: Light, 12: Light, 17: Light, 18: Dark, 23: Dark}
	for hour, want := range cases {
		if got := DefaultTheme(at(hour)); got != want {
			t.Errorf("hour %d: expected %s, got %s", hour, want, got)
		}
	}
}

func TestConvertTemp(t *testing.T) {
	cases := map[float64]float64{0: 32, 100: 212, -40: -40, 20: 68}
	for c, f := range cases {
		if got := ConvertTemp(Fahrenheit, c); got != f {
			t.Errorf("ConvertTemp(F, %v) = %v, want %v", c, got, f)
		}
		if got := ConvertTemp(Celsius, c); got != c {
			t.Errorf("ConvertTemp(C, %v) = %v, want unchanged", c, got)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	for _, u := range []Unit{Celsius, Fahrenheit} {
		if u.Toggle() == u || u.Toggle().Toggle() != u {
			t.Errorf("unit %s does not round-trip", u)
		}
	}
	for _, th := range []Theme{Light, Dark} {
		if th.Toggle() == th || th.Toggle().Toggle() != th {
			t.Errorf("theme %s does not round-trip", th)
		}
	}
	if Celsius.Symbol() != "°C" || Fahrenheit.Symbol() != "°F" {
		t.Errorf("unexpected symbols")
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	kv := newFakeKV()
	p := Load(ctx, kv, at(12))
	if p != (Preferences{Unit: Celsius, Theme: Light}) {
		t.Errorf("expected defaults, got %+v", p)
	}

	kv.data[UnitKey] = "fahrenheit"
	kv.data[ThemeKey] = "dark"
	p = Load(ctx, kv, at(12))
	if p != (Preferences{Unit: Fahrenheit, Theme: Dark}) {
		t.Errorf("expected stored values, got %+v", p)
	}

	kv.data[UnitKey] = "kelvin"
	if p := Load(ctx, kv, at(12)); p.Unit != Celsius {
		t.Errorf("invalid stored unit should fall back, got %s", p.Unit)
	}

	kv.getErr = errors.New("storage disabled")
	if p := Load(ctx, kv, at(20)); p != (Preferences{Unit: Celsius, Theme: Dark}) {
		t.Errorf("read failure should fall back to defaults, got %+v", p)
	}

	if p := Load(ctx, nil, at(3)); p.Theme != Dark {
		t.Errorf("nil store should use defaults")
	}
}

func TestPersisterFlush(t *testing.T) {
	kv := newFakeKV()
	p := NewPersister(kv)

	p.Schedule(UnitKey, "fahrenheit")
	p.Schedule(UnitKey, "celsius")
	p.Schedule(ThemeKey, "light")
	if kv.sets != 0 {
		t.Fatalf("schedule must not write immediately")
	}
	if p.queued() != 2 {
		t.Fatalf("expected 2 pending writes, got %d", p.queued())
	}

	p.Flush(context.Background())
	if kv.data[UnitKey] != "celsius" || kv.data[ThemeKey] != "light" {
		t.Errorf("unexpected stored data: %v", kv.data)
	}
	if kv.sets != 2 || p.queued() != 0 {
		t.Errorf("expected 2 writes and empty queue, got %d writes, %d pending", kv.sets, p.queued())
	}
}

func TestPersisterSwallowsFailures(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("quota exceeded")
	p := NewPersister(kv)

	p.Schedule(ThemeKey, "dark")
	p.Flush(context.Background())

	if p.queued() != 0 {
		t.Errorf("failed writes are dropped, not requeued")
	}

	NewPersister(nil).Flush(context.Background())
}
