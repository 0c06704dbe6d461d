// File: lixenwraith/c2rust-config/config.go
package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Top-level section names of the configuration root.
const (
	SectionGlobal  = "global"
	SectionModel   = "model"
	SectionFeature = "feature"

	// DefaultFeature is used in make mode when no feature name is given
	DefaultFeature = "default"
)

// Scope selects which section of the configuration an operation targets.
type Scope string

const (
	// ScopeGlobal targets the [global] section
	ScopeGlobal Scope = "global"
	// ScopeModel targets the [model] section
	ScopeModel Scope = "model"
	// ScopeMake targets a [feature.<name>] section
	ScopeMake Scope = "make"
)

// Config owns the configuration tree for the duration of one invocation.
// It is not safe for concurrent use.
type Config struct {
	root *Table
}

// New creates a configuration holding empty global, model and feature tables.
func New() *Config {
	c := &Config{root: NewTable()}
	// An empty root cannot hold a non-table at the top-level names.
	_ = c.ensureTopLevel()
	return c
}

// newFromTable adopts root as the configuration tree and guarantees the top-level sections.
func newFromTable(root *Table) (*Config, error) {
	c := &Config{root: root}
	if err := c.ensureTopLevel(); err != nil {
		return nil, err
	}
	if err := c.normalizeFeatures(); err != nil {
		return nil, err
	}
	return c, nil
}

// normalizeFeatures rebuilds the feature table with lower-cased names, keeping
// first-seen order. Sections whose names fold together are merged, later
// entries winning.
func (c *Config) normalizeFeatures() error {
	features, err := c.topLevel(SectionFeature)
	if err != nil {
		return err
	}

	normalized := NewTable()
	for _, key := range features.keys {
		v := features.entries[key]
		name := key
		if v.IsTable() {
			if name, err = NormalizeFeature(key); err != nil {
				return err
			}
		}

		existing, exists := normalized.Get(name)
		if !exists {
			normalized.Put(name, v)
			continue
		}
		dst, dstIsTable := existing.AsTable()
		src, srcIsTable := v.AsTable()
		if !dstIsTable || !srcIsTable {
			return pathError("load", SectionFeature+"."+name, fmt.Errorf("%w: feature is both a value and a table", ErrTypeMismatch))
		}
		if err := mergeTables(dst, src, SectionFeature+"."+name); err != nil {
			return err
		}
	}

	c.root.Put(SectionFeature, TableValue(normalized))
	return nil
}

// mergeTables copies src into dst, descending into tables present in both.
func mergeTables(dst, src *Table, path string) error {
	for _, key := range src.keys {
		v := src.entries[key]
		existing, exists := dst.Get(key)
		if !exists {
			dst.Put(key, v)
			continue
		}
		dstChild, dstIsTable := existing.AsTable()
		srcChild, srcIsTable := v.AsTable()
		switch {
		case dstIsTable && srcIsTable:
			if err := mergeTables(dstChild, srcChild, path+"."+key); err != nil {
				return err
			}
		case dstIsTable || srcIsTable:
			return pathError("load", path+"."+key, fmt.Errorf("%w: key is both a value and a table", ErrTypeMismatch))
		default:
			dst.Put(key, v)
		}
	}
	return nil
}

// Root returns the root table. Mutations through it are visible to c.
func (c *Config) Root() *Table {
	return c.root
}

// ensureTopLevel creates the global, model and feature tables when absent.
func (c *Config) ensureTopLevel() error {
	for _, name := range []string{SectionGlobal, SectionModel, SectionFeature} {
		v, exists := c.root.Get(name)
		if !exists {
			c.root.Put(name, TableValue(NewTable()))
			continue
		}
		if !v.IsTable() {
			return pathError("load", name, fmt.Errorf("%w: top-level section must be a table, got %s", ErrTypeMismatch, v.Kind()))
		}
	}
	return nil
}

var featureCaser = cases.Lower(language.Und)

// NormalizeFeature lower-cases a feature name. An empty name selects DefaultFeature.
// Names containing '.' are rejected because they would address a nested table.
func NormalizeFeature(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFeature, nil
	}
	if strings.ContainsRune(name, '.') {
		return "", pathError("feature", name, fmt.Errorf("%w: feature name cannot contain '.'", ErrInvalidKey))
	}
	return featureCaser.String(name), nil
}

// Section is one addressable area of the configuration: global, model, or a feature.
type Section struct {
	// Name is the dotted section name, e.g. "global" or "feature.debug".
	Name string
	// Scope is the mode the section was selected with.
	Scope Scope
	// Feature is the normalized feature name in make scope, empty otherwise.
	Feature string

	table *Table
}

// Table returns the section's table.
func (s *Section) Table() *Table {
	return s.table
}

// Section resolves the section selected by scope and feature.
// The feature argument is only legal with ScopeMake. When create is false a
// missing feature section fails with ErrFeatureNotFound; global and model
// always exist.
func (c *Config) Section(scope Scope, feature string, create bool) (*Section, error) {
	switch scope {
	case ScopeGlobal, ScopeModel:
		if feature != "" {
			return nil, fmt.Errorf("%w: --feature can only be used with --make", ErrInvalidOperation)
		}
		name := string(scope)
		t, err := c.topLevel(name)
		if err != nil {
			return nil, err
		}
		return &Section{Name: name, Scope: scope, table: t}, nil

	case ScopeMake:
		name, err := NormalizeFeature(feature)
		if err != nil {
			return nil, err
		}
		features, err := c.topLevel(SectionFeature)
		if err != nil {
			return nil, err
		}

		sectionName := SectionFeature + "." + name
		v, exists := features.Get(name)
		if !exists {
			if !create {
				return nil, pathError("section", sectionName, ErrFeatureNotFound)
			}
			t := NewTable()
			features.Put(name, TableValue(t))
			return &Section{Name: sectionName, Scope: scope, Feature: name, table: t}, nil
		}
		t, isTable := v.AsTable()
		if !isTable {
			return nil, pathError("section", sectionName, fmt.Errorf("%w: feature entry is a %s", ErrTypeMismatch, v.Kind()))
		}
		return &Section{Name: sectionName, Scope: scope, Feature: name, table: t}, nil

	default:
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidOperation, scope)
	}
}

// Features returns the feature names in insertion order.
func (c *Config) Features() []string {
	features, err := c.topLevel(SectionFeature)
	if err != nil {
		return nil
	}
	var names []string
	for _, name := range features.Keys() {
		if v, _ := features.Get(name); v.IsTable() {
			names = append(names, name)
		}
	}
	return names
}

func (c *Config) topLevel(name string) (*Table, error) {
	v, exists := c.root.Get(name)
	if !exists {
		t := NewTable()
		c.root.Put(name, TableValue(t))
		return t, nil
	}
	t, isTable := v.AsTable()
	if !isTable {
		return nil, pathError("section", name, fmt.Errorf("%w: section is a %s", ErrTypeMismatch, v.Kind()))
	}
	return t, nil
}
