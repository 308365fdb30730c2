package types

import "iter"

// Attributes is an insertion-ordered mapping from attribute name to Value.
// The zero value is an empty mapping ready for use. Re-setting an existing
// name keeps its original position.
type Attributes struct {
	names  []string
	values map[string]Value
}

// Set stores v under name.
func (a *Attributes) Set(name string, v Value) {
	if a.values == nil {
		a.values = make(map[string]Value)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Len returns the number of attributes.
func (a *Attributes) Len() int { return len(a.names) }

// All iterates over the attributes in insertion order.
func (a *Attributes) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, n := range a.names {
			if !yield(n, a.values[n]) {
				return
			}
		}
	}
}

