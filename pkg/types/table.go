package types

import "errors"

// ObjectTable is the registry of live entities with durable-storage
// synchronization. Implementations are single-writer: callers must not
// mutate the table from more than one goroutine.
type ObjectTable interface {
	// All returns the live entities in insertion order. The returned
	// entities are the live instances, not copies.
	All() []*Entity

	// New registers e under its composite key, replacing any entity that
	// already holds that key.
	New(e *Entity)

	// Create constructs and registers a new entity of the named class
	// with a fresh id and timestamps.
	// Returns ErrClassNotFound if the class is not registered.
	Create(className string) (*Entity, error)

	// Get returns the entity with the given class and id.
	// Returns ErrNotFound if no such entity is live.
	Get(className, id string) (*Entity, error)

	// Delete removes the entity stored under key and reports whether it
	// existed. Delete does not persist.
	Delete(key string) bool

	// Count returns the number of live entities of the named class, or of
	// every class when className is empty.
	Count(className string) int

	// Save writes the whole live set to the backing store, replacing its
	// previous content atomically.
	Save() error

	// Reload replaces the live set with the content of the backing store.
	// See LoadResult for the best-effort policy.
	Reload() (LoadResult, error)
}

// Object table errors.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidID         = errors.New("invalid entity ID")
	ErrClassNotFound     = errors.New("class not found")
	ErrReservedAttribute = errors.New("attribute name is reserved")
	ErrUnsupportedValue  = errors.New("unsupported attribute value")
)
