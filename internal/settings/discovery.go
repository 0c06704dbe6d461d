package settings

import (
	"os"
	"path/filepath"
)

// FileDiscoveryOptions configures settings file discovery
type FileDiscoveryOptions struct {
	// Name is the application directory name under the XDG config dirs
	Name string

	// Base name of the settings file (without extension)
	Base string

	// Extensions to try (in order)
	Extensions []string

	// Environment variable naming an explicit settings file
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool
}

// DefaultDiscoveryOptions returns the discovery options used by the CLI
func DefaultDiscoveryOptions() FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:       "c2rust-config",
		Base:       "settings",
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvVar:     EnvPrefix + "CONFIG_SETTINGS",
		UseXDG:     true,
	}
}

// discoverFile returns the first settings file found, or "" when there is none.
func discoverFile(opts FileDiscoveryOptions, lookupEnv LookupEnvFunc) string {
	if opts.EnvVar != "" {
		if path, ok := lookupEnv(opts.EnvVar); ok && path != "" {
			return path
		}
	}

	if !opts.UseXDG {
		return ""
	}

	for _, dir := range xdgConfigPaths(opts.Name, lookupEnv) {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Base+ext)
			if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
				return path
			}
		}
	}

	// No file found is not an error - the tool runs with defaults/env
	return ""
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(appName string, lookupEnv LookupEnvFunc) []string {
	var paths []string

	if xdgHome, _ := lookupEnv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, _ := lookupEnv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs, _ := lookupEnv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName))
	}

	return paths
}
