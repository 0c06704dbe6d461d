// File: lixenwraith/c2rust-config/doc.go

// Package config is the in-memory model and operation engine behind the
// c2rust-config tool: a TOML-backed, dot-path-addressed configuration store
// with a global section, a model section and named feature sections.
//
// Values:
//   - Scalar: a single string
//   - Array: an ordered list of distinct strings
//   - Table: nested key/value pairs, listed in insertion order
//
// Quick Start:
//
//	loc, err := config.Locate("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err := config.Load(loc.File)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := cfg.Apply(config.Request{
//	    Scope:   config.ScopeMake,
//	    Feature: "Debug", // stored as feature.debug
//	    Verb:    config.VerbAdd,
//	    Key:     "build.options",
//	    Values:  []string{"-O0", "-g"},
//	}, config.DefaultRevision)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range res.Warnings {
//	    fmt.Fprintln(os.Stderr, "Warning:", w.Message)
//	}
//	if res.Changed {
//	    err = cfg.Save(loc.File)
//	}
//
// Keys use dot notation ("build.dir"). A quoted TOML key containing dots and
// the equivalent nested tables load into the same location; on save every key
// below a section is written in quoted dotted form.
//
// Verbs:
//   - set: write a scalar (one value) or a deduplicated array (several values)
//   - unset: remove a key
//   - add: append values not already present, coercing a scalar to an array
//   - del: remove matching values, keeping an emptied array
//   - list: show one key, or every key of the section
//
// After a mutating verb on a feature section, ValidateFeature reports
// features that define only part of the required clean/test/build keys and
// build.files.<i> entries without a matching build.options element. These
// are warnings and never fail the operation.
//
// A Config is owned by a single invocation and is not safe for concurrent use.
package config
