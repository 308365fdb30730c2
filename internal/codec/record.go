// Package codec converts entities to and from their durable form: a flat,
// ordered JSON object carrying every attribute, the ISO-8601 encoding of
// both timestamps, and the __class__ tag.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Field is one name/value pair of a Record.
type Field struct {
	Name  string
	Value types.Value
}

// Record is the durable form of one entity. Field order is preserved
// through JSON encoding and decoding.
type Record struct {
	fields []Field
	index  map[string]int
}

func newRecord(size int) Record {
	return Record{fields: make([]Field, 0, size), index: make(map[string]int, size)}
}

// Set stores v under name, keeping the position of an existing field.
func (r *Record) Set(name string, v types.Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (types.Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return types.Value{}, false
	}
	return r.fields[i].Value, true
}

// Fields returns a copy of the record's fields in order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// MarshalJSON writes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of scalar values, keeping key order.
// A repeated key keeps its first position and its last value.
func (r *Record) UnmarshalJSON(data []byte) error {
	var out Record
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var v types.Value
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out.Set(key, v)
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// decodeObject walks the members of a JSON object in document order,
// handing each key and raw value to fn. Trailing data after the object is
// an error.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}
