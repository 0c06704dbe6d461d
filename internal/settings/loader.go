package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// loadFile reads and parses a TOML or YAML settings file into a flat path map.
// When required is false a missing file yields nil without error.
func loadFile(path string, required bool) (map[string]any, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}

	fileConfig := make(map[string]any)
	switch detectFileFormat(path) {
	case "yaml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings file '%s': %w", path, err)
		}
	default:
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse TOML settings file '%s': %w", path, err)
		}
	}

	return flattenMap(fileConfig, ""), nil
}

// detectFileFormat determines format from file extension; anything unknown is TOML
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// loadEnv returns the value of every registered path that has a matching environment variable.
func loadEnv(registered map[string]any, prefix string, lookupEnv LookupEnvFunc) map[string]any {
	found := make(map[string]any)
	for path := range registered {
		if value, exists := lookupEnv(envName(prefix, path)); exists {
			found[path] = value
		}
	}
	return found
}

// envName converts a settings path to an environment variable name
func envName(prefix, path string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// registeredOnly drops paths that have no default. Unknown keys in a settings file are ignored.
func registeredOnly(data, registered map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for path, value := range data {
		if _, ok := registered[path]; ok {
			out[path] = value
		}
	}
	return out
}

// flattenStruct registers every leaf field of a struct under its dotted "toml" tag path.
func flattenStruct(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("defaults must be a non-nil struct pointer or value")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("defaults must be a struct, got %T", v)
	}

	flat := make(map[string]any)
	registerFields(rv, "", flat)
	return flat, nil
}

func registerFields(v reflect.Value, prefix string, flat map[string]any) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}
		key := field.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			key = name
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if fieldValue := v.Field(i); fieldValue.Kind() == reflect.Struct {
			registerFields(fieldValue, path, flat)
		} else {
			flat[path] = fieldValue.Interface()
		}
	}
}

// flattenMap converts a nested map to a flat map with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}
	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested
	for _, segment := range segments[:len(segments)-1] {
		next, isMap := current[segment].(map[string]any)
		if !isMap {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}
