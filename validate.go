// FILE: lixenwraith/c2rust-config/validate.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Revision is a versioned validator profile. The tool's CLI changed the
// spelling of the required command keys between releases, so the required
// set is selected by name rather than fixed.
type Revision struct {
	// Name identifies the revision on the command line and in settings.
	Name string
	// Required lists the keys a complete feature defines, in reporting order.
	Required []string
	// CheckBuildFiles enables the build.files.<i> / build.options bound check.
	CheckBuildFiles bool
}

var (
	// RevisionBare names commands by their bare group key: clean, test, build.
	// In the nested model a bare key and its ".dir" sibling share one path
	// prefix, so this profile only reports; it cannot be fully satisfied.
	RevisionBare = Revision{
		Name:     "bare",
		Required: []string{"clean.dir", "clean", "test.dir", "test", "build.dir", "build"},
	}

	// RevisionCmd names commands with a ".cmd" suffix.
	RevisionCmd = Revision{
		Name:     "cmd",
		Required: []string{"clean.dir", "clean.cmd", "test.dir", "test.cmd", "build.dir", "build.cmd"},
	}

	// RevisionFiles is RevisionCmd plus build.options / build.files.<i> support.
	RevisionFiles = Revision{
		Name:            "files",
		Required:        []string{"clean.dir", "clean.cmd", "test.dir", "test.cmd", "build.dir", "build.cmd"},
		CheckBuildFiles: true,
	}

	// DefaultRevision is used when no revision is configured.
	DefaultRevision = RevisionFiles
)

// Revisions returns every known revision, oldest first.
func Revisions() []Revision {
	return []Revision{RevisionBare, RevisionCmd, RevisionFiles}
}

// LookupRevision finds a revision by name. An empty name selects DefaultRevision.
func LookupRevision(name string) (Revision, error) {
	if name == "" {
		return DefaultRevision, nil
	}
	var names []string
	for _, r := range Revisions() {
		if r.Name == name {
			return r, nil
		}
		names = append(names, r.Name)
	}
	return Revision{}, fmt.Errorf("%w: unknown revision %q (want one of %s)", ErrInvalidOperation, name, strings.Join(names, ", "))
}

// Warning types.
const (
	WarningIncomplete = "incomplete"
	WarningFilesBound = "files_bound"
)

const (
	buildOptionsKey = "build.options"
	buildFilesKey   = "build.files"
)

// Warning is a non-fatal validation finding about a feature.
type Warning struct {
	// Type is WarningIncomplete or WarningFilesBound.
	Type string
	// Feature is the normalized feature name.
	Feature string
	// Keys are the missing required keys, or the single out-of-bound build.files key.
	Keys []string
	// Message is a human-readable description.
	Message string
}

// ValidateFeature checks a feature table against rev and returns its warnings.
// It never modifies the table.
func ValidateFeature(feature string, t *Table, rev Revision) []Warning {
	var warnings []Warning

	var missing []string
	for _, key := range rev.Required {
		if !hasLeaf(t, key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 && len(missing) < len(rev.Required) {
		warnings = append(warnings, Warning{
			Type:    WarningIncomplete,
			Feature: feature,
			Keys:    missing,
			Message: fmt.Sprintf("feature '%s' is missing required keys: %s", feature, strings.Join(missing, ", ")),
		})
	}

	if rev.CheckBuildFiles {
		warnings = append(warnings, checkBuildFiles(feature, t)...)
	}

	return warnings
}

// checkBuildFiles warns about every build.files.<i> whose index is not below len(build.options).
func checkBuildFiles(feature string, t *Table) []Warning {
	path, _ := SplitPath(buildFilesKey)
	v, err := Lookup(t, path)
	if err != nil {
		return nil
	}
	files, isTable := v.AsTable()
	if !isTable {
		return nil
	}

	optLen := 0
	optPath, _ := SplitPath(buildOptionsKey)
	if opts, err := Lookup(t, optPath); err == nil {
		if items, err := opts.CoerceToArray(); err == nil {
			optLen = len(items)
		}
	}

	var warnings []Warning
	for _, k := range files.Keys() {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			continue
		}
		if i >= optLen {
			key := buildFilesKey + "." + k
			warnings = append(warnings, Warning{
				Type:    WarningFilesBound,
				Feature: feature,
				Keys:    []string{key},
				Message: fmt.Sprintf("feature '%s': %s exceeds %s bound (index %d, length %d)", feature, key, buildOptionsKey, i, optLen),
			})
		}
	}
	return warnings
}

// hasLeaf reports whether key resolves to a scalar or array in t.
func hasLeaf(t *Table, key string) bool {
	path, err := SplitPath(key)
	if err != nil {
		return false
	}
	v, err := Lookup(t, path)
	return err == nil && !v.IsTable()
}
