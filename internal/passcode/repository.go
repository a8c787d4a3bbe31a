package passcode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for passcode record persistence.
type Repository interface {
	Get(ctx context.Context, id int64) (*Record, error)
	GetName(ctx context.Context, id int64) (string, error)
	Insert(ctx context.Context, secret string) (int64, error)
	TouchAccess(ctx context.Context, id int64, ts time.Time) error
	UpdateFields(ctx context.Context, id int64, secret, name *string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]Record, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed passcode repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves a record by id. Returns ErrNotFound when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, secret, created, last_access FROM passcodes WHERE id = ?", id)
	return scanRecord(row)
}

// GetName retrieves the display name for a record, used in notification
// text. Returns empty string when the name has not been set.
func (r *SQLiteRepository) GetName(ctx context.Context, id int64) (string, error) {
	var name sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT name FROM passcodes WHERE id = ?", id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting name: %w", err)
	}
	if !name.Valid {
		return "", nil
	}
	return name.String, nil
}

// Insert creates a new record with the next free id (max + 1, or 1 on an
// empty table) and created = last_access = now. The id computation and
// insert run in one transaction so concurrent registrations cannot race
// to the same id.
func (r *SQLiteRepository) Insert(ctx context.Context, secret string) (int64, error) {
	if secret == "" {
		return 0, ErrEmptySecret
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var nextID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) + 1 FROM passcodes").Scan(&nextID); err != nil {
		return 0, fmt.Errorf("computing next id: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO passcodes (id, secret, created, last_access) VALUES (?, ?, ?, ?)`,
		nextID, secret, now, now,
	); err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert: %w", err)
	}
	return nextID, nil
}

// TouchAccess updates a record's last_access timestamp.
// A no-op (nil error) when the id does not exist.
func (r *SQLiteRepository) TouchAccess(ctx context.Context, id int64, ts time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE passcodes SET last_access = ? WHERE id = ?",
		ts.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("updating last access: %w", err)
	}
	return nil
}

// UpdateFields partially updates a record's secret and/or name.
// Only fields that actually differ from the stored values are written.
//
// Returns (true, nil) when a row changed, ErrNotFound when the id does
// not exist, and (false, ErrNoChanges) when every supplied field already
// matches the stored value.
func (r *SQLiteRepository) UpdateFields(ctx context.Context, id int64, secret, name *string) (bool, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}

	var sets []string
	var args []any

	if secret != nil && *secret != current.Secret {
		sets = append(sets, "secret = ?")
		args = append(args, *secret)
	}
	if name != nil && (current.Name == nil || *name != *current.Name) {
		sets = append(sets, "name = ?")
		args = append(args, *name)
	}

	if len(sets) == 0 {
		return false, ErrNoChanges
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE passcodes SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("updating record: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	return rows > 0, nil
}

// Delete removes a record by id. Returns whether a row was removed.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM passcodes WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting record: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	return rows > 0, nil
}

// List returns all records ordered by creation date, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, secret, created, last_access FROM passcodes ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// Count returns the total number of passcode records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passcodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a record from a sql.Row or sql.Rows.
func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var name sql.NullString
	var created, lastAccess string

	err := s.Scan(&rec.ID, &name, &rec.Secret, &created, &lastAccess)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	if name.Valid {
		rec.Name = &name.String
	}
	rec.Created, _ = time.Parse(time.RFC3339, created)       //nolint:errcheck // format is controlled
	rec.LastAccess, _ = time.Parse(time.RFC3339, lastAccess) //nolint:errcheck // format is controlled

	return &rec, nil
}
