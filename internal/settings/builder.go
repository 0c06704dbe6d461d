package settings

import (
	"fmt"
	"os"
)

// Source represents a settings source, used to define load precedence
type Source string

const (
	// SourceDefault represents the built-in defaults
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a settings file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values set by command-line flags
	SourceCLI Source = "cli"
)

// DefaultSources is the standard precedence, highest first.
func DefaultSources() []Source {
	return []Source{SourceCLI, SourceEnv, SourceFile, SourceDefault}
}

// LookupEnvFunc looks up an environment variable, like os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Builder provides a fluent interface for assembling Settings
type Builder struct {
	defaults  Settings
	sources   []Source
	envPrefix string
	lookupEnv LookupEnvFunc
	file      string
	discovery *FileDiscoveryOptions
	overrides map[string]any
}

// Loaded is the outcome of Build.
type Loaded struct {
	Settings Settings
	// File is the settings file that was read, empty if none.
	File string
	// Origin maps each settings path to the source its value came from.
	Origin map[string]Source
}

// NewBuilder creates a builder with the built-in defaults and standard precedence.
func NewBuilder() *Builder {
	return &Builder{
		defaults:  Defaults(),
		sources:   DefaultSources(),
		envPrefix: EnvPrefix,
		lookupEnv: os.LookupEnv,
		overrides: make(map[string]any),
	}
}

// WithDefaults replaces the built-in defaults
func (b *Builder) WithDefaults(defaults Settings) *Builder {
	b.defaults = defaults
	return b
}

// WithSources sets the precedence order, highest first
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.sources = sources
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithLookupEnv replaces os.LookupEnv, mainly for tests
func (b *Builder) WithLookupEnv(fn LookupEnvFunc) *Builder {
	if fn != nil {
		b.lookupEnv = fn
	}
	return b
}

// WithFile sets an explicit settings file. A missing explicit file is an error.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileDiscovery searches for a settings file when no explicit file is set
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithOverride sets a command-line value for a dotted settings path
func (b *Builder) WithOverride(path string, value any) *Builder {
	b.overrides[path] = value
	return b
}

// Build layers the sources, decodes the result and validates it.
func (b *Builder) Build() (*Loaded, error) {
	layers := make(map[Source]map[string]any)

	defaults, err := flattenStruct(b.defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to register defaults: %w", err)
	}
	layers[SourceDefault] = defaults

	loaded := &Loaded{Origin: make(map[string]Source)}

	file := b.file
	if file == "" && b.discovery != nil {
		file = discoverFile(*b.discovery, b.lookupEnv)
	}
	if file != "" {
		fileData, err := loadFile(file, b.file != "")
		if err != nil {
			return nil, err
		}
		if fileData != nil {
			layers[SourceFile] = registeredOnly(fileData, defaults)
			loaded.File = file
		}
	}

	layers[SourceEnv] = loadEnv(defaults, b.envPrefix, b.lookupEnv)

	for path := range b.overrides {
		if _, registered := defaults[path]; !registered {
			return nil, fmt.Errorf("unknown settings path: %s", path)
		}
	}
	layers[SourceCLI] = b.overrides

	// Resolve each registered path by the first source that has it.
	merged := make(map[string]any, len(defaults))
	for path := range defaults {
		for _, source := range b.sources {
			if value, exists := layers[source][path]; exists {
				merged[path] = value
				loaded.Origin[path] = source
				break
			}
		}
	}

	if err := decode(merged, &loaded.Settings); err != nil {
		return nil, err
	}
	if err := loaded.Settings.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}
