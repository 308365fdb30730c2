package types

import (
	"strings"
	"time"
)

// Reserved attribute names. They are carried by Entity fields, never by
// Attributes, and the console refuses to update them.
const (
	AttrID        = "id"
	AttrCreatedAt = "created_at"
	AttrUpdatedAt = "updated_at"
	AttrClass     = "__class__"
)

// IsReserved reports whether name is one of the reserved attribute names.
func IsReserved(name string) bool {
	switch name {
	case AttrID, AttrCreatedAt, AttrUpdatedAt, AttrClass:
		return true
	}
	return false
}

// Entity is one typed record: a class name, an immutable id, two
// timestamps, and a set of named scalar attributes.
type Entity struct {
	ClassName string     // Class tag, one of the registry's names.
	ID        string     // Unique id assigned at construction.
	CreatedAt time.Time  // Set once at construction.
	UpdatedAt time.Time  // Refreshed on every mutating save.
	Attrs     Attributes // Type-specific attributes, reserved names excluded.
}

// NewEntity returns an entity of the given class whose timestamps are both
// set to now.
func NewEntity(className, id string, now time.Time) *Entity {
	return &Entity{
		ClassName: className,
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key returns the entity's composite key, "<ClassName>.<id>".
func (e *Entity) Key() string {
	return Key(e.ClassName, e.ID)
}

// Set stores an attribute value. Returns ErrReservedAttribute for id,
// created_at, updated_at, and __class__.
func (e *Entity) Set(name string, v Value) error {
	if IsReserved(name) {
		return ErrReservedAttribute
	}
	e.Attrs.Set(name, v)
	return nil
}

// Get returns a non-reserved attribute value.
func (e *Entity) Get(name string) (Value, bool) {
	return e.Attrs.Get(name)
}

// Touch refreshes UpdatedAt. UpdatedAt never moves before CreatedAt.
func (e *Entity) Touch(now time.Time) {
	if now.Before(e.CreatedAt) {
		now = e.CreatedAt
	}
	e.UpdatedAt = now
}

// Key formats a composite key from a class name and an id.
func Key(className, id string) string {
	return className + "." + id
}

// SplitKey splits a composite key at its first dot. Returns ErrInvalidID
// when either side is empty or the dot is missing.
func SplitKey(key string) (className, id string, err error) {
	className, id, ok := strings.Cut(key, ".")
	if !ok || className == "" || id == "" {
		return "", "", ErrInvalidID
	}
	return className, id, nil
}
