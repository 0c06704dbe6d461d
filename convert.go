// File: lixenwraith/c2rust-config/convert.go
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// scalarString converts a decoded TOML scalar into the string form the value model stores.
// Hand-edited files may carry integers, floats, booleans or datetimes.
func scalarString(val any, path string) (string, error) {
	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalTime and toml.LocalDatetime
		return v.String(), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	}

	return "", pathError("load", path, fmt.Errorf("%w: unsupported value type %T", ErrTypeMismatch, val))
}

// valueFromTOML converts a decoded non-table TOML value into a Value.
func valueFromTOML(val any, path string) (Value, error) {
	switch v := val.(type) {
	case []any:
		items := make([]string, 0, len(v))
		for i, elem := range v {
			switch elem.(type) {
			case []any, map[string]any:
				return Value{}, pathError("load", path,
					fmt.Errorf("%w: array element %d must be a string, got %T", ErrTypeMismatch, i, elem))
			}
			s, err := scalarString(elem, path)
			if err != nil {
				return Value{}, err
			}
			items = append(items, s)
		}
		return Array(items...), nil
	case []map[string]any:
		return Value{}, pathError("load", path, fmt.Errorf("%w: arrays of tables are not supported", ErrTypeMismatch))
	}

	s, err := scalarString(val, path)
	if err != nil {
		return Value{}, err
	}
	return Scalar(s), nil
}
