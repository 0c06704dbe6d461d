// FILE: lixenwraith/c2rust-config/discovery.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the project-local directory holding the configuration file
	ConfigDirName = ".c2rust"
	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.toml"
)

// Location describes where the configuration file of a project lives.
type Location struct {
	// Root is the project root directory.
	Root string
	// Dir is Root/.c2rust.
	Dir string
	// File is Root/.c2rust/config.toml.
	File string
}

// Locate resolves the configuration location under root, or under the
// current working directory when root is empty. The directory and the file
// must both exist; the directory is never created.
func Locate(root string) (Location, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Location{}, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}

	loc := Location{
		Root: root,
		Dir:  filepath.Join(root, ConfigDirName),
	}
	loc.File = filepath.Join(loc.Dir, ConfigFileName)

	stat, err := os.Stat(loc.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loc, fmt.Errorf("%w: %s", ErrDirectoryNotFound, loc.Dir)
		}
		return loc, fmt.Errorf("failed to stat config directory '%s': %w", loc.Dir, err)
	}
	if !stat.IsDir() {
		return loc, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, loc.Dir)
	}

	stat, err = os.Stat(loc.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loc, fmt.Errorf("%w: %s", ErrConfigNotFound, loc.File)
		}
		return loc, fmt.Errorf("failed to stat config file '%s': %w", loc.File, err)
	}
	if stat.IsDir() {
		return loc, fmt.Errorf("%w: %s is a directory", ErrConfigNotFound, loc.File)
	}

	return loc, nil
}
