package settings

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// decode nests the merged flat values and decodes them into target.
func decode(flat map[string]any, target *Settings) error {
	nested := make(map[string]any)
	for path, value := range flat {
		setNestedValue(nested, path, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       trimStringHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	return nil
}

// trimStringHookFunc trims whitespace from string inputs, which env vars often carry
func trimStringHookFunc() mapstructure.DecodeHookFuncKind {
	return func(f, t reflect.Kind, data any) (any, error) {
		if f != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}
}
