package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Binding is the in-memory half of a slot. Its value is loaded once, on the
// first Bind of the key, and every change is written through before the
// changing call returns.
//
// Get, Set and Update copy values on the way in and out, so callers can
// never modify the bound value without going through the store.
type Binding[T any] struct {
	store *Store
	key   string
	def   T

	mu    sync.Mutex
	value T
}

// Bind returns the Binding for key, creating it (and loading its value) on
// first use. Binding the same key again returns the same *Binding; binding it
// with a different type is a programming error and panics.
//
// The loaded value is written back immediately, so a slot that was missing
// holds its default from then on.
func Bind[T any](ctx context.Context, s *Store, key string, def T) *Binding[T] {
	s.bindMu.Lock()
	defer s.bindMu.Unlock()

	if existing, ok := s.bindings[key]; ok {
		b, ok := existing.(*Binding[T])
		if !ok {
			var want T
			panic(fmt.Sprintf("store: slot %q already bound as %T, not %T", key, existing.current(), want))
		}
		return b
	}

	b := &Binding[T]{store: s, key: key, def: clone(def)}
	b.value = Load(ctx, s, key, def)
	s.bindings[key] = b
	_ = s.write(ctx, key, b.value)
	return b
}

func (b *Binding[T]) Key() string { return b.key }

// Get returns a copy of the current value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.value)
}

// Set replaces the value and writes it through.
func (b *Binding[T]) Set(ctx context.Context, v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = clone(v)
	_ = b.store.write(ctx, b.key, b.value)
}

// Update reads the full current value, hands a copy to fn, and stores the
// full value fn returns. If fn fails nothing changes, in memory or on the
// medium. fn must not call back into the same Binding.
func (b *Binding[T]) Update(ctx context.Context, fn func(cur T) (T, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := fn(clone(b.value))
	if err != nil {
		return err
	}
	b.value = clone(next)
	_ = b.store.write(ctx, b.key, b.value)
	return nil
}

func (b *Binding[T]) current() any {
	return b.Get()
}

func (b *Binding[T]) resetToDefault() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = clone(b.def)
	return clone(b.value)
}

// clone deep-copies v through its JSON form, which is exactly the form the
// medium keeps. Values that cannot be encoded are returned as-is.
func clone[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
