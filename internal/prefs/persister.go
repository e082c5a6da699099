package prefs

import (
	"context"
	"log"
	"sync"
)

// Writer is the write side of a key-value store.
type Writer interface {
	Set(ctx context.Context, key, value string) error
}

// Persister defers preference writes. Schedule only records the latest value
// per key; Flush, run later by the scheduler, writes them out.
// Write failures are logged and dropped.
type Persister struct {
	kv Writer

	mu      sync.Mutex
	pending map[string]string
}

// NewPersister creates a Persister writing to kv. A nil kv discards writes.
func NewPersister(kv Writer) *Persister {
	return &Persister{
		kv:      kv,
		pending: make(map[string]string),
	}
}

// Schedule queues key=value for the next flush. It never blocks on storage.
func (p *Persister) Schedule(key, value string) {
	p.mu.Lock()
	p.pending[key] = value
	p.mu.Unlock()
}

// Flush writes every queued value. Failed writes are not retried.
func (p *Persister) Flush(ctx context.Context) {
	p.mu.Lock()
	batch := p.pending
	p.pending = make(map[string]string)
	p.mu.Unlock()

	if p.kv == nil || len(batch) == 0 {
		return
	}

	for key, value := range batch {
		if err := p.kv.Set(ctx, key, value); err != nil {
			log.Printf("prefs: persisting %s=%s failed: %v", key, value, err)
		}
	}
}
