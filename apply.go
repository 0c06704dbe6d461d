// FILE: lixenwraith/c2rust-config/apply.go
package config

import (
	"fmt"
)

// Request is a single operation against one section.
type Request struct {
	Scope   Scope
	Feature string
	Verb    Verb
	Key     string
	Values  []string
}

// Result is the outcome of a successful Apply.
type Result struct {
	// Section is the dotted name of the targeted section.
	Section string
	// Entries holds the listed entries for VerbList, or the written value for set/add/del.
	Entries []Entry
	// Warnings are validator findings. They never make Apply fail.
	Warnings []Warning
	// Changed reports whether the tree was mutated and should be saved.
	Changed bool
}

// Apply checks req against the verb contract, executes it, and validates the
// feature section afterwards when a make-scope verb mutated it.
func (c *Config) Apply(req Request, rev Revision) (*Result, error) {
	if err := req.check(); err != nil {
		return nil, err
	}

	create := req.Verb == VerbSet || req.Verb == VerbAdd
	section, err := c.Section(req.Scope, req.Feature, create)
	if err != nil {
		return nil, err
	}

	result := &Result{Section: section.Name, Changed: req.Verb.Mutates()}
	var written Value

	switch req.Verb {
	case VerbSet:
		written, err = section.Set(req.Key, req.Values...)
	case VerbUnset:
		_, err = section.Unset(req.Key)
	case VerbAdd:
		written, err = section.Add(req.Key, req.Values...)
	case VerbDel:
		written, err = section.Del(req.Key, req.Values...)
	case VerbList:
		result.Entries, err = section.List(req.Key)
	}
	if err != nil {
		return nil, err
	}

	if written.Kind() != 0 {
		result.Entries = []Entry{{Key: req.Key, Value: written}}
	}

	if req.Verb.Mutates() && section.Scope == ScopeMake {
		result.Warnings = ValidateFeature(section.Feature, section.table, rev)
	}

	return result, nil
}

// check enforces the per-verb argument contract.
func (r Request) check() error {
	switch r.Verb {
	case VerbSet, VerbAdd, VerbDel:
		if r.Key == "" {
			return fmt.Errorf("%w: --%s requires a key", ErrInvalidOperation, r.Verb)
		}
		if len(r.Values) == 0 {
			return fmt.Errorf("%w: --%s requires at least one value", ErrInvalidOperation, r.Verb)
		}
	case VerbUnset:
		if r.Key == "" {
			return fmt.Errorf("%w: --unset requires a key", ErrInvalidOperation)
		}
		if len(r.Values) > 0 {
			return fmt.Errorf("%w: --unset takes no values", ErrInvalidOperation)
		}
	case VerbList:
		if len(r.Values) > 0 {
			return fmt.Errorf("%w: --list takes at most one key", ErrInvalidOperation)
		}
	default:
		return fmt.Errorf("%w: unknown verb %q", ErrInvalidOperation, r.Verb)
	}
	return nil
}
