package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/swms/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	q   dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, q: db, now: time.Now}
}

// withQuerier returns a copy of r that runs its statements on q (a transaction).
func (r *SQLiteRepository) withQuerier(q dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: r.db, q: q, now: r.now}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.q.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT key, value FROM slots`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slot rows: %w", err)
	}

	return result, nil
}

// ReplaceAll makes entries the whole content of the table in a single
// transaction: keys absent from entries are deleted, the rest upserted.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries map[string][]byte) error {
	if r.db == nil {
		return errors.New("replace slots: repository is not bound to a database")
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := r.withQuerier(tx)
		existing, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		for key := range existing {
			if _, keep := entries[key]; keep {
				continue
			}
			if err := txRepo.Delete(ctx, key); err != nil {
				return err
			}
		}
		for key, value := range entries {
			if err := txRepo.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
