// Package store binds in-memory values to durable slots.
//
// A slot is addressed by a string key and holds one JSON-serialisable value.
// The package offers three operations:
//
//   - Load reads a slot and falls back to a caller-supplied default when the
//     slot is absent, empty, null, unparsable, or the medium is unavailable.
//     It never fails.
//   - Save writes the canonical JSON encoding of a value, replacing whatever
//     was stored (last write wins). Failures are logged and absorbed.
//   - Bind attaches a Binding to a key: the value is loaded once, and every
//     Set or Update writes the full new value through to the medium before
//     returning.
//
// When a write fails the in-memory value stays authoritative and the store
// reports ModeVolatile until that slot is written successfully again.
//
// Storage errors never reach callers. They are logged with
// common.ErrStorageUnavailable or common.ErrParseFailure in the chain.
package store
