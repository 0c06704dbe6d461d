// FILE: lixenwraith/c2rust-config/ops.go
package config

import (
	"fmt"
	"slices"
)

// Verb is one of the five operations the engine executes.
type Verb string

const (
	VerbSet   Verb = "set"
	VerbUnset Verb = "unset"
	VerbAdd   Verb = "add"
	VerbDel   Verb = "del"
	VerbList  Verb = "list"
)

// Mutates reports whether the verb changes the tree.
func (v Verb) Mutates() bool {
	return v == VerbSet || v == VerbUnset || v == VerbAdd || v == VerbDel
}

// Entry is one displayed key/value pair of a list result.
type Entry struct {
	Key   string
	Value Value
}

// Line renders the entry as "key = value".
func (e Entry) Line() string {
	rendered, err := e.Value.Render()
	if err != nil {
		return e.Key + " = {}"
	}
	return e.Key + " = " + rendered
}

// Set writes values at key, creating intermediate tables as needed.
// One value is stored as a scalar; several are stored as an array with
// duplicates removed in first-seen order. Whatever was at key is replaced.
func (s *Section) Set(key string, values ...string) (Value, error) {
	if len(values) == 0 {
		return Value{}, pathError("set", key, fmt.Errorf("%w: set requires at least one value", ErrInvalidOperation))
	}
	path, err := SplitPath(key)
	if err != nil {
		return Value{}, err
	}
	parent, err := navigateParent(s.table, path, true)
	if err != nil {
		return Value{}, err
	}

	var v Value
	if len(values) == 1 {
		v = Scalar(values[0])
	} else {
		v = Array(dedup(nil, values)...)
	}
	parent.Put(path[len(path)-1], v)
	return v, nil
}

// Unset removes the entry at key.
func (s *Section) Unset(key string) (Value, error) {
	path, err := SplitPath(key)
	if err != nil {
		return Value{}, err
	}
	return Remove(s.table, path)
}

// Add appends each value to the array at key unless it is already present.
// A missing terminal entry is created as an array; an existing scalar is first
// coerced to a one-element array.
//
// Unlike del, add also creates missing intermediate tables instead of failing
// with ErrKeyNotFound, so "add build.files.0 a.c" works on a fresh feature.
func (s *Section) Add(key string, values ...string) (Value, error) {
	if len(values) == 0 {
		return Value{}, pathError("add", key, fmt.Errorf("%w: add requires at least one value", ErrInvalidOperation))
	}
	path, err := SplitPath(key)
	if err != nil {
		return Value{}, err
	}
	parent, err := navigateParent(s.table, path, true)
	if err != nil {
		return Value{}, err
	}

	terminal := path[len(path)-1]
	var existing []string
	if current, exists := parent.Get(terminal); exists {
		existing, err = current.CoerceToArray()
		if err != nil {
			return Value{}, pathError("add", key, err)
		}
	}

	v := Array(dedup(existing, values)...)
	parent.Put(terminal, v)
	return v, nil
}

// Del removes every element equal to one of values from the array at key.
// Values that are not present are ignored. An array emptied this way is kept.
// A scalar counts as a one-element array; it is only rewritten when it matched.
func (s *Section) Del(key string, values ...string) (Value, error) {
	if len(values) == 0 {
		return Value{}, pathError("del", key, fmt.Errorf("%w: del requires at least one value", ErrInvalidOperation))
	}
	path, err := SplitPath(key)
	if err != nil {
		return Value{}, err
	}
	parent, err := navigateParent(s.table, path, false)
	if err != nil {
		return Value{}, err
	}

	terminal := path[len(path)-1]
	current, exists := parent.Get(terminal)
	if !exists {
		return Value{}, pathError("del", key, ErrKeyNotFound)
	}
	items, err := current.CoerceToArray()
	if err != nil {
		return Value{}, pathError("del", key, err)
	}

	kept := slices.DeleteFunc(items, func(item string) bool {
		return slices.Contains(values, item)
	})
	if current.Kind() == KindScalar && len(kept) == 1 {
		return current, nil
	}

	v := Array(kept...)
	parent.Put(terminal, v)
	return v, nil
}

// List returns the entry at key, or every entry of the section when key is empty.
// A table at key is an ErrInvalidOperation. Without a key, table-valued entries
// are expanded to their dotted leaves so every entry renders on one line.
func (s *Section) List(key string) ([]Entry, error) {
	if key == "" {
		leaves := flattenLeaves(s.table, "")
		entries := make([]Entry, 0, len(leaves))
		for _, l := range leaves {
			entries = append(entries, Entry{Key: l.key, Value: l.value})
		}
		return entries, nil
	}

	path, err := SplitPath(key)
	if err != nil {
		return nil, err
	}
	v, err := Lookup(s.table, path)
	if err != nil {
		return nil, err
	}
	if v.IsTable() {
		return nil, pathError("list", key, fmt.Errorf("%w: key is a table, list its sub-keys instead", ErrInvalidOperation))
	}
	return []Entry{{Key: key, Value: v}}, nil
}

// dedup appends each of values to base unless it is already present, keeping order.
func dedup(base, values []string) []string {
	out := make([]string, 0, len(base)+len(values))
	seen := make(map[string]bool, len(base)+len(values))
	for _, group := range [][]string{base, values} {
		for _, v := range group {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
