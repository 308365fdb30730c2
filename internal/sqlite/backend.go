package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Backend implements types.Persister on a SQLite database file. The
// database is opened and closed within each Load and Store call.
type Backend struct {
	path string
}

var _ types.Persister = (*Backend)(nil)

// NewBackend returns a persister for the database file at path.
func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the database file path.
func (b *Backend) Path() string { return b.path }

// Load returns every stored record ordered by save position. A missing
// database file yields ErrStoreNotFound. A file SQLite cannot query is
// reported as ErrCorruptStore.
func (b *Backend) Load() ([]types.StoredRecord, error) {
	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", b.path, err)
	}
	f.Close()

	db, err := b.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptStore, err)
	}

	rows, err := db.Query("SELECT key, record FROM objects ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptStore, err)
	}
	defer rows.Close()

	var records []types.StoredRecord
	for rows.Next() {
		var key, record string
		if err := rows.Scan(&key, &record); err != nil {
			return nil, fmt.Errorf("%w: scanning object: %v", types.ErrCorruptStore, err)
		}
		records = append(records, types.StoredRecord{Key: key, Data: []byte(record)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptStore, err)
	}
	return records, nil
}

// Store replaces every row with records inside one transaction, so a failed
// Store leaves the previous rows in place.
func (b *Backend) Store(records []types.StoredRecord) error {
	db, err := b.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning store transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return fmt.Errorf("clearing objects: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO objects (seq, key, class_name, record) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		className, _, err := types.SplitKey(rec.Key)
		if err != nil {
			return fmt.Errorf("object key %q: %w", rec.Key, err)
		}
		if _, err := stmt.Exec(i, rec.Key, className, string(rec.Data)); err != nil {
			return fmt.Errorf("inserting %s: %w", rec.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing store transaction: %w", err)
	}
	return nil
}

func (b *Backend) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", b.path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
