package store

import (
	"context"
	"sync"
)

type fakeMedium struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   map[string]int
	sets   map[string]int
	getErr error
	setErr error
}

func newFakeMedium() *fakeMedium {
	return &fakeMedium{
		data: map[string][]byte{},
		gets: map[string]int{},
		sets: map[string]int{},
	}
}

func (f *fakeMedium) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[key]++
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeMedium) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[key]++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeMedium) raw(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.data[key])
}
