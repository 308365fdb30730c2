package codec

import (
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// TimeLayout is the ISO-8601 form written for created_at and updated_at:
// microsecond precision, no zone, local time.
const TimeLayout = "2006-01-02T15:04:05.000000"

// parseLayout accepts TimeLayout with any fractional precision, including
// none.
const parseLayout = "2006-01-02T15:04:05.999999999"

// Decode errors.
var (
	ErrTimestampFormat = errors.New("invalid timestamp format")
	ErrMissingField    = errors.New("missing required field")
)

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a timestamp written by FormatTime. Zone-less values are
// read as local time; RFC 3339 values with a zone are accepted too.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(parseLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampFormat, s)
	}
	return t, nil
}

// Encode returns the durable record of e: id, created_at, updated_at, every
// attribute in order, then __class__.
func Encode(e *types.Entity) Record {
	r := newRecord(e.Attrs.Len() + 4)
	r.Set(types.AttrID, types.StringValue(e.ID))
	r.Set(types.AttrCreatedAt, types.StringValue(FormatTime(e.CreatedAt)))
	r.Set(types.AttrUpdatedAt, types.StringValue(FormatTime(e.UpdatedAt)))
	for name, v := range e.Attrs.All() {
		r.Set(name, v)
	}
	r.Set(types.AttrClass, types.StringValue(e.ClassName))
	return r
}

// Decode builds an entity from its durable record. The __class__ field
// selects the class and is not kept as an attribute; the two timestamps
// are parsed back into time values. Every other field is copied verbatim.
func Decode(r Record, reg *types.Registry) (*types.Entity, error) {
	className, err := requireString(r, types.AttrClass)
	if err != nil {
		return nil, err
	}
	if !reg.Has(className) {
		return nil, goerr.Wrap(types.ErrClassNotFound, "unknown class tag", goerr.V("class", className))
	}
	id, err := requireString(r, types.AttrID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, goerr.Wrap(types.ErrInvalidID, "empty id", goerr.V("class", className))
	}

	e := &types.Entity{ClassName: className, ID: id}
	if e.CreatedAt, err = requireTime(r, types.AttrCreatedAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = requireTime(r, types.AttrUpdatedAt); err != nil {
		return nil, err
	}

	for _, f := range r.Fields() {
		if types.IsReserved(f.Name) {
			continue
		}
		e.Attrs.Set(f.Name, f.Value)
	}
	return e, nil
}

func requireString(r Record, name string) (string, error) {
	v, ok := r.Get(name)
	if !ok {
		return "", goerr.Wrap(ErrMissingField, "field not present", goerr.V("field", name))
	}
	if v.Kind() != types.KindString {
		return "", goerr.Wrap(ErrMissingField, "field is not a string",
			goerr.V("field", name), goerr.V("kind", v.Kind().String()))
	}
	return v.Text(), nil
}

func requireTime(r Record, name string) (time.Time, error) {
	s, err := requireString(r, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "cannot decode timestamp", goerr.V("field", name))
	}
	return t, nil
}
