// FILE: lixenwraith/c2rust-config/value.go
package config

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindScalar is a single UTF-8 string
	KindScalar Kind = iota + 1
	// KindArray is an ordered list of strings
	KindArray
	// KindTable is a nested table of values
	KindTable
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is a configuration value: a scalar string, an array of strings, or a table.
// The zero Value is invalid and never stored in a Table.
type Value struct {
	kind  Kind
	str   string
	items []string
	table *Table
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, str: s}
}

// Array returns an array value holding a copy of items, in the given order.
func Array(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// TableValue wraps t as a value. A nil t is replaced by an empty table.
func TableValue(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: KindTable, table: t}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsTable reports whether v is a table.
func (v Value) IsTable() bool {
	return v.kind == KindTable
}

// AsScalar returns the string held by a scalar value.
func (v Value) AsScalar() (string, error) {
	if v.kind != KindScalar {
		return "", fmt.Errorf("%w: expected scalar, got %s", ErrTypeMismatch, v.kind)
	}
	return v.str, nil
}

// CoerceToArray returns the elements of v viewed as an array.
// A scalar becomes a single-element array; an array is returned as a copy; a table fails.
func (v Value) CoerceToArray() ([]string, error) {
	switch v.kind {
	case KindScalar:
		return []string{v.str}, nil
	case KindArray:
		cp := make([]string, len(v.items))
		copy(cp, v.items)
		return cp, nil
	default:
		return nil, fmt.Errorf("%w: cannot use %s as array", ErrTypeMismatch, v.kind)
	}
}

// AsTable returns the table held by v.
func (v Value) AsTable() (*Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}
	return v.table, true
}

// Render formats a scalar or array for one-line display.
// Array elements are joined with ", ". Tables cannot be rendered on one line.
func (v Value) Render() (string, error) {
	switch v.kind {
	case KindScalar:
		return v.str, nil
	case KindArray:
		return strings.Join(v.items, ", "), nil
	case KindTable:
		return "", fmt.Errorf("%w: a table has no single-line rendering", ErrInvalidOperation)
	default:
		return "", fmt.Errorf("%w: invalid value", ErrTypeMismatch)
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		return Array(v.items...)
	case KindTable:
		return TableValue(v.table.Clone())
	default:
		return v
	}
}

// Interface converts v to plain Go data: string, []string or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindArray:
		cp := make([]string, len(v.items))
		copy(cp, v.items)
		return cp
	case KindTable:
		return v.table.ToMap()
	default:
		return nil
	}
}

// Table maps keys to values and remembers the order keys were first inserted.
type Table struct {
	keys    []string
	entries map[string]Value
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Value)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Put stores v under key. Replacing an existing key keeps its position.
func (t *Table) Put(key string, v Value) {
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = v
}

// Delete removes key and returns the value it held.
func (t *Table) Delete(key string) (Value, bool) {
	v, ok := t.entries[key]
	if !ok {
		return Value{}, false
	}
	delete(t.entries, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	cp := make([]string, len(t.keys))
	copy(cp, t.keys)
	return cp
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	clone := NewTable()
	for _, k := range t.keys {
		clone.Put(k, t.entries[k].Clone())
	}
	return clone
}

// ToMap converts the table into nested plain Go maps.
func (t *Table) ToMap() map[string]any {
	m := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		m[k] = t.entries[k].Interface()
	}
	return m
}
