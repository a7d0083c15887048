package slots

import (
	"bytes"
	"context"
	"sync"
)

// MemoryRepository is a process-lifetime Repository. Values are copied on
// the way in and out so callers cannot alias stored bytes. It has no
// ReplaceAll: a store reset over it rewrites and deletes key by key.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = bytes.Clone(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]byte, len(r.items))
	for k, v := range r.items {
		out[k] = bytes.Clone(v)
	}
	return out, nil
}
