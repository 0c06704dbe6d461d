// File: lixenwraith/c2rust-config/encode.go
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Encode writes c as TOML. Each top-level table becomes a [section], each
// feature becomes [feature.<name>], and everything below a section is written
// as a dotted key ("build.dir" = "x") so the layout survives a round trip.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer

	// Bare values at the root must precede every header.
	for _, key := range c.root.keys {
		v := c.root.entries[key]
		if v.IsTable() {
			continue
		}
		if err := writeEntry(&buf, []string{key}, v); err != nil {
			return err
		}
	}

	for _, key := range c.root.keys {
		t, isTable := c.root.entries[key].AsTable()
		if !isTable {
			continue
		}
		if key != SectionFeature {
			if err := writeSection(&buf, []string{key}, t); err != nil {
				return err
			}
			continue
		}

		// [feature] itself only appears when it holds values of its own or nothing at all.
		leaves := NewTable()
		for _, name := range t.keys {
			if v := t.entries[name]; !v.IsTable() {
				leaves.Put(name, v)
			}
		}
		if leaves.Len() > 0 || t.Len() == 0 {
			if err := writeSection(&buf, []string{key}, leaves); err != nil {
				return err
			}
		}
		for _, name := range t.keys {
			if feature, isTable := t.entries[name].AsTable(); isTable {
				if err := writeSection(&buf, []string{key, name}, feature); err != nil {
					return err
				}
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeSection writes a [header] line followed by the table's entries.
func writeSection(buf *bytes.Buffer, header []string, t *Table) error {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	quoted := make([]string, len(header))
	for i, part := range header {
		quoted[i] = quoteKey(part)
	}
	fmt.Fprintf(buf, "[%s]\n", strings.Join(quoted, "."))

	for _, key := range t.keys {
		if err := writeEntries(buf, []string{key}, t.entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// writeEntries writes v under the dotted path segments, descending into tables.
func writeEntries(buf *bytes.Buffer, segments []string, v Value) error {
	t, isTable := v.AsTable()
	if !isTable {
		return writeEntry(buf, segments, v)
	}
	if t.Len() == 0 {
		fmt.Fprintf(buf, "%s = {}\n", quoteKey(strings.Join(segments, ".")))
		return nil
	}
	for _, key := range t.keys {
		if err := writeEntries(buf, append(segments[:len(segments):len(segments)], key), t.entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry encodes a single key/value line. The encoder quotes any key that
// is not a bare TOML key, which covers every dotted path.
func writeEntry(buf *bytes.Buffer, segments []string, v Value) error {
	key := strings.Join(segments, ".")
	if err := toml.NewEncoder(buf).Encode(map[string]any{key: v.Interface()}); err != nil {
		return fmt.Errorf("failed to encode key '%s': %w", key, err)
	}
	return nil
}

// quoteKey returns s unchanged when it is a bare TOML key, otherwise as a basic string.
func quoteKey(s string) string {
	if isBareKey(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\u%04X", r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isBareKey reports whether s is made only of A-Za-z0-9_- characters.
func isBareKey(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
