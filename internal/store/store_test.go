package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "weather-unit"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "weather-unit", "fahrenheit"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, "weather-unit", "celsius"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := kv.Get(ctx, "weather-unit")
	if err != nil || !ok || v != "celsius" {
		t.Fatalf("expected celsius, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseKV(t, s)

	_ = s.Close()
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	exerciseKV(t, s)
	if err := s.Set(context.Background(), "weather-theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Values survive reopening the file.
	s, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get(context.Background(), "weather-theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark after reopen, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	if _, err := NewRedis("not-a-url", ""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := NewRedisWithClient(client, "test:prefs")
	defer s.Close()
	exerciseKV(t, s)

	if got := mr.HGet("test:prefs", "weather-unit"); got != "celsius" {
		t.Errorf("expected hash field to hold celsius, got %q", got)
	}
}

func TestNewRedisDefaultNamespace(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedis("redis://"+mr.Addr(), "")
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer s.Close()

	if err := s.Set(context.Background(), "weather-theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := mr.HGet("weather-dashboard:prefs", "weather-theme"); got != "dark" {
		t.Errorf("expected dark in default hash, got %q", got)
	}
}

func TestRedisStoreReportsServerErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	s := NewRedisWithClient(client, "test:prefs")
	defer s.Close()

	mr.SetError("READONLY")
	if _, _, err := s.Get(context.Background(), "weather-unit"); err == nil {
		t.Errorf("expected Get error")
	}
	if err := s.Set(context.Background(), "weather-unit", "celsius"); err == nil {
		t.Errorf("expected Set error")
	}
}
