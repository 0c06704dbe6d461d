// File: lixenwraith/c2rust-config/path.go
package config

import (
	"fmt"
	"strings"
)

// Path is a non-empty sequence of key segments, e.g. "build.files.0" -> [build files 0].
type Path []string

// SplitPath splits a dot-notation key into its segments.
// Empty keys and empty segments (from "a..b", ".a" or "a.") are rejected with ErrInvalidKey.
func SplitPath(key string) (Path, error) {
	if key == "" {
		return nil, pathError("split", key, fmt.Errorf("%w: key cannot be empty", ErrInvalidKey))
	}
	segments := strings.Split(key, ".")
	for i, segment := range segments {
		if segment == "" {
			return nil, pathError("split", key, fmt.Errorf("%w: empty segment at position %d", ErrInvalidKey, i))
		}
	}
	return Path(segments), nil
}

// String joins the segments back into dot notation.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// prefix returns the dotted form of the first n segments.
func (p Path) prefix(n int) string {
	return strings.Join(p[:n], ".")
}

// navigateParent walks every non-terminal segment of path and returns the table
// holding the terminal segment. With createMissing, absent intermediate segments
// are inserted as empty tables.
func navigateParent(root *Table, path Path, createMissing bool) (*Table, error) {
	current := root
	for i, segment := range path[:len(path)-1] {
		next, exists := current.Get(segment)
		if !exists {
			if !createMissing {
				return nil, pathError("navigate", path.prefix(i+1), ErrKeyNotFound)
			}
			child := NewTable()
			current.Put(segment, TableValue(child))
			current = child
			continue
		}

		child, isTable := next.AsTable()
		if !isTable {
			return nil, pathError("navigate", path.prefix(i+1),
				fmt.Errorf("%w: %s is not a table", ErrTypeMismatch, next.Kind()))
		}
		current = child
	}
	return current, nil
}

// Lookup returns the value stored at path.
func Lookup(root *Table, path Path) (Value, error) {
	parent, err := navigateParent(root, path, false)
	if err != nil {
		return Value{}, err
	}
	v, exists := parent.Get(path[len(path)-1])
	if !exists {
		return Value{}, pathError("navigate", path.String(), ErrKeyNotFound)
	}
	return v, nil
}

// Remove deletes the terminal entry of path and returns it.
// Intermediate tables left empty are kept.
func Remove(root *Table, path Path) (Value, error) {
	parent, err := navigateParent(root, path, false)
	if err != nil {
		return Value{}, err
	}
	v, existed := parent.Delete(path[len(path)-1])
	if !existed {
		return Value{}, pathError("remove", path.String(), ErrKeyNotFound)
	}
	return v, nil
}

// leaf is a non-table value together with its dotted path relative to some table.
type leaf struct {
	key   string
	value Value
}

// flattenLeaves walks t depth-first in insertion order and returns every
// non-table value with its dot-notation path. Empty tables produce no leaves.
func flattenLeaves(t *Table, prefix string) []leaf {
	var flat []leaf
	for _, key := range t.keys {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		v := t.entries[key]
		if child, isTable := v.AsTable(); isTable {
			flat = append(flat, flattenLeaves(child, newPath)...)
		} else {
			flat = append(flat, leaf{key: newPath, value: v})
		}
	}
	return flat
}
