package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used by tests and by
// STORE_DRIVER=memory for throwaway runs.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Driver() string { return DriverMemory }

func (b *MemoryBackend) Load(_ context.Context, name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.docs[name]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), doc...), nil
}

func (b *MemoryBackend) Save(_ context.Context, name string, payload []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = append([]byte(nil), payload...)
	return nil
}

func (b *MemoryBackend) Ping(_ context.Context) error { return nil }

func (b *MemoryBackend) Close() error { return nil }
