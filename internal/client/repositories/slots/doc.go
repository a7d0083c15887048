// Package slots is the durable medium behind the SWMS state store.
//
// A slot is one named unit of persisted state: a string key and the JSON
// bytes of its value. The medium knows nothing about JSON; it stores and
// returns opaque bytes with last-write-wins semantics and no versioning.
//
// Two implementations are provided:
//
//   - SQLiteRepository persists slots in the `slots` table created by the
//     migrations in internal/client/localdb. It runs over dbx.DBTX so the
//     same code serves *sql.DB and *sql.Tx.
//   - MemoryRepository keeps slots in a map for the lifetime of the process
//     (storage mode "memory", and tests).
//
// Get returns (nil, nil) for an absent key; callers treat that as "use the
// default".
package slots
