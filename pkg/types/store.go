package types

import (
	"encoding/json"
	"errors"
)

// StoredRecord is one durable record as the backing store holds it: the
// composite key and the record's raw JSON object.
type StoredRecord struct {
	Key  string
	Data json.RawMessage
}

// Persister moves durable records to and from a backing store. The object
// table owns encoding and decoding; persisters only move bytes.
type Persister interface {
	// Load returns every stored record in stored order.
	// Returns ErrStoreNotFound when the store does not exist and an error
	// wrapping ErrCorruptStore when its content cannot be split into
	// records.
	Load() ([]StoredRecord, error)

	// Store replaces the whole content of the store with records. A
	// failed Store leaves the previous content intact.
	Store(records []StoredRecord) error
}

// Backing store errors.
var (
	ErrStoreNotFound = errors.New("backing store not found")
	ErrCorruptStore  = errors.New("backing store content is malformed")
)

// LoadResult reports what a Reload recovered. Reload is best-effort: a
// corrupt store yields an empty table with Corrupt set, and undecodable
// records are skipped and listed in Skipped while the rest load.
type LoadResult struct {
	Found   bool            // The backing store existed.
	Loaded  int             // Entities now live in the table.
	Corrupt error           // Set when the store could not be parsed at all.
	Skipped []SkippedRecord // Records dropped during decoding.
}

// SkippedRecord names a record that could not be decoded and why.
type SkippedRecord struct {
	Key string
	Err error
}

// Partial reports whether anything present in the store failed to load.
func (r LoadResult) Partial() bool {
	return r.Corrupt != nil || len(r.Skipped) > 0
}
