package slots

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE slots (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "swms_users", []byte(`[{"id":"u1"}]`)))

	v, err := r.Get(ctx, "swms_users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"u1"}]`), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValueAndTimestamp(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	r.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	r.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)

	var updated string
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM slots WHERE key='k'`).Scan(&updated))
	assert.Equal(t, "2026-01-02T00:00:00Z", updated)
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, r.Set(ctx, "b", []byte(`"x"`)))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte(`1`), m["a"])
	assert.Equal(t, []byte(`"x"`), m["b"])
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte(`true`)))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestReplaceAll_SwapsContent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "stale", []byte(`1`)))
	require.NoError(t, r.ReplaceAll(ctx, map[string][]byte{
		"swms_theme":     []byte(`"device"`),
		"swms_locations": []byte(`["LOK-001"]`),
	}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"swms_theme":     []byte(`"device"`),
		"swms_locations": []byte(`["LOK-001"]`),
	}, m)
}

func TestClosedDB_ErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get slot[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set slot[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete slot[k]")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list slots")
}

func TestReplaceAll_RollsBackWhenAWriteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT key, value FROM slots`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("stale", []byte(`1`)))
	mock.ExpectExec(`DELETE FROM slots WHERE key = \?`).WithArgs("stale").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slots`).WillReturnError(errors.New("quota exceeded"))
	mock.ExpectRollback()

	err = r.ReplaceAll(context.Background(), map[string][]byte{"swms_users": []byte(`[]`)})
	require.ErrorContains(t, err, "failed to set slot[swms_users]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_DeletesOnlyStaleKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT key, value FROM slots`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("swms_theme", []byte(`"dark"`)).
			AddRow("swms_legacy", []byte(`{}`)))
	mock.ExpectExec(`DELETE FROM slots WHERE key = \?`).WithArgs("swms_legacy").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slots`).
		WithArgs("swms_theme", []byte(`"device"`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewSQLiteRepository(db).ReplaceAll(context.Background(), map[string][]byte{"swms_theme": []byte(`"device"`)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_ListFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT key, value FROM slots`).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err = NewSQLiteRepository(db).ReplaceAll(context.Background(), map[string][]byte{"swms_theme": []byte(`"device"`)})
	require.ErrorContains(t, err, "failed to list slots")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DriverErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`INSERT INTO slots`).
		WithArgs("swms_hw", []byte(`{}`), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err = NewSQLiteRepository(db).Set(context.Background(), "swms_hw", []byte(`{}`))
	require.ErrorContains(t, err, "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanErrorOnNullValue(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE slots (key TEXT PRIMARY KEY, value BLOB, updated_at TEXT);`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO slots(key, value, updated_at) VALUES ('bad', NULL, '');`)
	require.NoError(t, err)

	m, err := NewSQLiteRepository(db).List(context.Background())
	require.NoError(t, err)
	v, ok := m["bad"]
	require.True(t, ok)
	require.Nil(t, v)
}
