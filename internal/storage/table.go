// Package storage implements the object table: the registry of live
// entities keyed by "<ClassName>.<id>", kept in insertion order, and
// synchronized with a backing store through a types.Persister.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hbnb/internal/codec"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Table implements types.ObjectTable. It is not safe for concurrent use.
type Table struct {
	persister types.Persister
	registry  *types.Registry
	keys      []string
	objects   map[string]*types.Entity
	saved     bool

	now   func() time.Time
	newID func() string
}

var _ types.ObjectTable = (*Table)(nil)

// New returns an empty table backed by p that accepts the classes in reg.
// Call Reload to populate it from the backing store.
func New(p types.Persister, reg *types.Registry) *Table {
	return &Table{
		persister: p,
		registry:  reg,
		objects:   make(map[string]*types.Entity),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// All returns the live entities in insertion order.
func (t *Table) All() []*types.Entity {
	out := make([]*types.Entity, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.objects[k])
	}
	return out
}

// Keys returns the composite keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// New registers e under its composite key. Registering a key twice
// replaces the entity and keeps the key's original position.
func (t *Table) New(e *types.Entity) {
	key := e.Key()
	if _, ok := t.objects[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.objects[key] = e
}

// Create constructs a new entity of className with a fresh uuid and both
// timestamps set to the current time, and registers it.
func (t *Table) Create(className string) (*types.Entity, error) {
	if !t.registry.Has(className) {
		return nil, fmt.Errorf("%w: %s", types.ErrClassNotFound, className)
	}
	e := types.NewEntity(className, t.newID(), t.Now())
	t.New(e)
	return e, nil
}

// Now returns the table clock's current time, truncated to the precision
// the durable record keeps.
func (t *Table) Now() time.Time {
	return t.now().Truncate(time.Microsecond)
}

// Get returns the live entity with the given class and id.
func (t *Table) Get(className, id string) (*types.Entity, error) {
	if className == "" || id == "" {
		return nil, types.ErrInvalidID
	}
	e, ok := t.objects[types.Key(className, id)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return e, nil
}

// Delete removes the entity stored under key and reports whether it
// existed. The backing store is not touched; call Save to persist.
func (t *Table) Delete(key string) bool {
	if _, ok := t.objects[key]; !ok {
		return false
	}
	delete(t.objects, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return true
}

// Count returns the number of live entities whose key starts with
// "<className>.", or the total when className is empty.
func (t *Table) Count(className string) int {
	if className == "" {
		return len(t.keys)
	}
	prefix := className + "."
	n := 0
	for _, k := range t.keys {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

// Save encodes every live entity and replaces the backing store content.
func (t *Table) Save() error {
	records, err := codec.EncodeEntities(t.All())
	if err != nil {
		return err
	}
	if err := t.persister.Store(records); err != nil {
		return fmt.Errorf("saving objects: %w", err)
	}
	t.saved = true
	return nil
}

// Saved reports whether Save has succeeded since the last Reload.
func (t *Table) Saved() bool { return t.saved }

// Reload replaces the live set with the backing store's content.
//
// A missing store leaves the table as it is. An unreadable store returns
// the error and leaves the table as it is. A store that cannot be parsed
// empties the table and is reported in LoadResult.Corrupt. Records that
// fail to decode are skipped and listed in LoadResult.Skipped. Entities are
// keyed by their decoded class and id, not by the stored key.
func (t *Table) Reload() (types.LoadResult, error) {
	var res types.LoadResult
	t.saved = false

	records, err := t.persister.Load()
	switch {
	case errors.Is(err, types.ErrStoreNotFound):
		return res, nil
	case errors.Is(err, types.ErrCorruptStore):
		res.Found = true
		res.Corrupt = err
		t.reset()
		return res, nil
	case err != nil:
		return res, fmt.Errorf("loading objects: %w", err)
	}

	res.Found = true
	t.reset()
	for _, rec := range records {
		e, err := codec.DecodeStored(rec, t.registry)
		if err != nil {
			res.Skipped = append(res.Skipped, types.SkippedRecord{Key: rec.Key, Err: err})
			continue
		}
		t.New(e)
	}
	res.Loaded = len(t.keys)
	return res, nil
}

func (t *Table) reset() {
	t.keys = nil
	t.objects = make(map[string]*types.Entity)
}
