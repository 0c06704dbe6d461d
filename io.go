// File: lixenwraith/c2rust-config/io.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
)

// Load reads and parses the TOML configuration file at path.
// A missing file is reported as ErrConfigNotFound.
func Load(path string) (*Config, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	c, err := Parse(fileData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return c, nil
}

// Parse builds a configuration from TOML text.
// Keys are inserted in file order. A quoted key containing dots ("build.dir")
// and the nested form ([build] dir) normalize to the same location.
// Feature section names are lower-cased; [feature.Debug] loads as feature.debug.
func Parse(data []byte) (*Config, error) {
	fileConfig := make(map[string]any)
	md, err := toml.Decode(string(data), &fileConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	root := NewTable()

	// MetaData.Keys preserves the order keys appear in the document.
	for _, key := range md.Keys() {
		rawValue, found := lookupRaw(fileConfig, key)
		if !found {
			continue
		}
		segments, err := normalizeKey(key)
		if err != nil {
			return nil, err
		}
		if err := insertRaw(root, segments, rawValue, false); err != nil {
			return nil, err
		}
	}

	// Anything MetaData did not enumerate (inline table contents) goes in sorted order.
	if err := mergeRaw(root, nil, fileConfig); err != nil {
		return nil, err
	}

	return newFromTable(root)
}

// Save encodes c as TOML and atomically replaces the file at path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}

	// renameio handles temp file creation, fsync, atomic rename and cleanup
	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("failed to create temporary config file for '%s': %w", path, err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write temp config file '%s': %w", pendingFile.Name(), err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace config file '%s': %w", path, err)
	}
	return nil
}

// normalizeKey splits every component of a decoded TOML key on '.'.
func normalizeKey(key toml.Key) ([]string, error) {
	var segments []string
	for _, part := range key {
		for _, segment := range strings.Split(part, ".") {
			if segment == "" {
				return nil, pathError("load", key.String(), fmt.Errorf("%w: empty key segment", ErrInvalidKey))
			}
			segments = append(segments, segment)
		}
	}
	return segments, nil
}

// lookupRaw walks the decoded document along key.
func lookupRaw(doc map[string]any, key toml.Key) (any, bool) {
	var current any = doc
	for _, part := range key {
		m, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		next, exists := m[part]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// insertRaw places a decoded value at segments. Tables are created empty;
// their contents arrive as later keys or through mergeRaw. With onlyMissing,
// an existing entry is left untouched.
func insertRaw(root *Table, segments []string, rawValue any, onlyMissing bool) error {
	dotted := strings.Join(segments, ".")
	parent, err := navigateParent(root, Path(segments), true)
	if err != nil {
		return err
	}
	terminal := segments[len(segments)-1]
	existing, exists := parent.Get(terminal)

	if _, isMap := rawValue.(map[string]any); isMap {
		if !exists {
			parent.Put(terminal, TableValue(NewTable()))
			return nil
		}
		if !existing.IsTable() {
			return pathError("load", dotted, fmt.Errorf("%w: key is both a value and a table", ErrTypeMismatch))
		}
		return nil
	}

	if exists {
		if onlyMissing {
			return nil
		}
		if existing.IsTable() {
			return pathError("load", dotted, fmt.Errorf("%w: key is both a table and a value", ErrTypeMismatch))
		}
	}

	v, err := valueFromTOML(rawValue, dotted)
	if err != nil {
		return err
	}
	parent.Put(terminal, v)
	return nil
}

// mergeRaw adds every entry of raw under prefix that is not yet in root.
func mergeRaw(root *Table, prefix []string, raw map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		segments := slices.Clone(prefix)
		for _, segment := range strings.Split(key, ".") {
			if segment == "" {
				return pathError("load", key, fmt.Errorf("%w: empty key segment", ErrInvalidKey))
			}
			segments = append(segments, segment)
		}

		if err := insertRaw(root, segments, raw[key], true); err != nil {
			return err
		}
		if sub, isMap := raw[key].(map[string]any); isMap {
			if err := mergeRaw(root, segments, sub); err != nil {
				return err
			}
		}
	}
	return nil
}
