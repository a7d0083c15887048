package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/swms/internal/common"
	"github.com/dmitrijs2005/swms/internal/logging"
)

// Medium is the durable backing of a Store. Get must return (nil, nil) for
// an absent key.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Replacer is implemented by media that can swap their whole content in one
// step. Store.Reset uses it when available.
type Replacer interface {
	ReplaceAll(ctx context.Context, entries map[string][]byte) error
}

// Lister is implemented by media that can enumerate their content.
type Lister interface {
	List(ctx context.Context) (map[string][]byte, error)
}

// Deleter is implemented by media that can drop a single key.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

type Mode string

const (
	// ModePersistent: every slot written so far reached the medium.
	ModePersistent Mode = "persistent"
	// ModeVolatile: at least one slot holds changes that will not survive a restart.
	ModeVolatile Mode = "volatile"
	// ModeUnavailable: there is no medium; nothing is persisted.
	ModeUnavailable Mode = "unavailable"
)

type Store struct {
	medium Medium
	log    logging.Logger

	bindMu   sync.Mutex
	bindings map[string]slot

	dirtyMu sync.Mutex
	dirty   map[string]struct{}
}

// slot is the type-erased view of a *Binding[T] kept by the Store.
type slot interface {
	current() any
	resetToDefault() any
}

// New returns a Store over medium. A nil medium behaves as storage that is
// permanently unavailable. A nil logger discards log records.
func New(medium Medium, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		medium:   medium,
		log:      log.With("component", "store"),
		bindings: make(map[string]slot),
		dirty:    make(map[string]struct{}),
	}
}

// Available reports whether a medium is attached.
func (s *Store) Available() bool {
	return s.medium != nil
}

func (s *Store) Mode() Mode {
	if s.medium == nil {
		return ModeUnavailable
	}
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	if len(s.dirty) > 0 {
		return ModeVolatile
	}
	return ModePersistent
}

// DirtyKeys lists slots whose latest value failed to reach the medium.
func (s *Store) DirtyKeys() []string {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	keys := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BoundKeys lists every key that has a Binding, sorted.
func (s *Store) BoundKeys() []string {
	s.bindMu.Lock()
	defer s.bindMu.Unlock()
	keys := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StoredKeys lists every key the medium holds, sorted. It fails with
// ErrStorageUnavailable when there is no medium or the medium cannot be
// enumerated.
func (s *Store) StoredKeys(ctx context.Context) ([]string, error) {
	l, ok := s.medium.(Lister)
	if !ok {
		return nil, common.ErrStorageUnavailable
	}
	all, err := l.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Load returns the value stored under key, or def when there is nothing
// usable there. It never fails.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	if s == nil || s.medium == nil {
		return def
	}
	raw, err := s.medium.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "slot read failed, using default",
			"key", key, "err", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
		return def
	}
	v, ok, err := decode[T](raw)
	if err != nil {
		s.log.Warn(ctx, "slot content unreadable, using default",
			"key", key, "err", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
		return def
	}
	if !ok {
		return def
	}
	return v
}

// Save writes value under key. Failures are logged, never returned: the
// caller's in-memory value remains authoritative.
func (s *Store) Save(ctx context.Context, key string, value any) {
	_ = s.write(ctx, key, value)
}

// Snapshot returns the authoritative current value of key: the bound
// in-memory value when the key is bound, otherwise whatever the medium holds.
func (s *Store) Snapshot(ctx context.Context, key string) (any, bool) {
	s.bindMu.Lock()
	b, bound := s.bindings[key]
	s.bindMu.Unlock()
	if bound {
		return b.current(), true
	}

	if s.medium == nil {
		return nil, false
	}
	raw, err := s.medium.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "slot read failed", "key", key,
			"err", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
		return nil, false
	}
	v, ok, err := decode[any](raw)
	if err != nil {
		s.log.Warn(ctx, "slot content unreadable", "key", key,
			"err", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
		return nil, false
	}
	return v, ok
}

// Reset puts every bound slot back to its default and rewrites the medium
// so that it holds exactly those defaults. A medium without ReplaceAll is
// rewritten key by key and, when it can list and delete, cleared of keys
// that have no binding.
func (s *Store) Reset(ctx context.Context) {
	s.bindMu.Lock()
	bound := make(map[string]slot, len(s.bindings))
	for k, b := range s.bindings {
		bound[k] = b
	}
	s.bindMu.Unlock()

	values := make(map[string]any, len(bound))
	for key, b := range bound {
		values[key] = b.resetToDefault()
	}

	if s.medium == nil {
		return
	}

	r, ok := s.medium.(Replacer)
	if !ok {
		for key, v := range values {
			_ = s.write(ctx, key, v)
		}
		s.prune(ctx, bound)
		return
	}

	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			s.log.Warn(ctx, "slot not serialisable", "key", key, "err", err)
			s.markDirty(key)
			continue
		}
		entries[key] = raw
	}
	if err := r.ReplaceAll(ctx, entries); err != nil {
		s.log.Warn(ctx, "slot reset not persisted",
			"err", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
		for key := range values {
			s.markDirty(key)
		}
		return
	}
	for key := range entries {
		s.markClean(key)
	}
}

// prune deletes medium keys that are not in keep. Failures are logged.
func (s *Store) prune(ctx context.Context, keep map[string]slot) {
	d, ok := s.medium.(Deleter)
	if !ok {
		return
	}
	stored, err := s.StoredKeys(ctx)
	if err != nil {
		s.log.Warn(ctx, "stray slots not pruned", "err", err)
		return
	}
	for _, key := range stored {
		if _, bound := keep[key]; bound {
			continue
		}
		if err := d.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "stray slot not deleted", "key", key,
				"err", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
			continue
		}
		s.log.Debug(ctx, "stray slot deleted", "key", key)
	}
}

func (s *Store) write(ctx context.Context, key string, value any) error {
	if s.medium == nil {
		s.log.Debug(ctx, "slot write dropped, no medium", "key", key)
		return common.ErrStorageUnavailable
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn(ctx, "slot not serialisable, change kept in memory only", "key", key, "err", err)
		s.markDirty(key)
		return err
	}

	if err := s.medium.Set(ctx, key, raw); err != nil {
		err = fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		s.log.Warn(ctx, "slot write failed, change kept in memory only", "key", key, "err", err)
		s.markDirty(key)
		return err
	}

	s.log.Debug(ctx, "slot written", "key", key, "bytes", len(raw))
	s.markClean(key)
	return nil
}

func (s *Store) markDirty(key string) {
	s.dirtyMu.Lock()
	s.dirty[key] = struct{}{}
	s.dirtyMu.Unlock()
}

func (s *Store) markClean(key string) {
	s.dirtyMu.Lock()
	delete(s.dirty, key)
	s.dirtyMu.Unlock()
}

// decode parses raw into a T. ok is false when raw holds no value at all
// (missing, blank or JSON null).
func decode[T any](raw []byte) (v T, ok bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, false, nil
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}
