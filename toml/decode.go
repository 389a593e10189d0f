package toml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrTypeMismatch is wrapped by every field that could not take its document value
var ErrTypeMismatch = errors.New("toml: type mismatch")

// Unmarshal parses TOML data and stores the result in the value pointed to by v
// Keys absent from the document leave their fields untouched, so callers can
// preload defaults. Fields whose value has the wrong type are skipped and
// reported together; every other field is still applied
func Unmarshal(data []byte, v any) error {
	p := NewParser(data)
	parsed, err := p.Parse()
	if err != nil {
		return err
	}
	return Decode(parsed, v)
}

// Decode maps a parsed document onto a struct or map using `toml` tags
func Decode(data map[string]any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("toml: target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return decodeValue(data, val.Elem(), path)

	case reflect.Struct:
		dataMap, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		return decodeStruct(dataMap, val, path)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toml: %s: only map[string]T is supported", path)
		}
		dataMap, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		if val.IsNil() {
			val.Set(reflect.MakeMap(val.Type()))
		}
		var errs []error
		for k, vData := range dataMap {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(vData, elem, joinPath(path, k)); err != nil {
				errs = append(errs, err)
				continue
			}
			val.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}
		return errors.Join(errs...)

	case reflect.Interface:
		if data != nil {
			val.Set(reflect.ValueOf(data))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := data.(int)
		if !ok {
			return mismatch(path, "integer", data)
		}
		if val.OverflowInt(int64(i)) {
			return fmt.Errorf("toml: %s: %d overflows %s: %w", path, i, val.Type(), ErrTypeMismatch)
		}
		val.SetInt(int64(i))

	case reflect.Float32, reflect.Float64:
		switch f := data.(type) {
		case float64:
			val.SetFloat(f)
		case int:
			val.SetFloat(float64(f))
		default:
			return mismatch(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return mismatch(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return mismatch(path, "bool", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("toml: %s: unsupported kind %s", path, val.Kind())
	}

	return nil
}

func decodeStruct(data map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	var errs []error

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		key, _, skip := fieldKey(fieldType)
		if skip {
			continue
		}

		vData, ok := data[key]
		if !ok {
			continue
		}
		if err := decodeValue(vData, val.Field(i), joinPath(path, key)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fieldKey resolves the document key for a struct field from its tag
func fieldKey(f reflect.StructField) (key string, omitEmpty, skip bool) {
	key = f.Name
	tag := f.Tag.Get("toml")
	if tag == "" {
		return key, false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", false, true
	}
	if name != "" {
		key = name
	}
	return key, opts == "omitempty", false
}

func mismatch(path, want string, got any) error {
	return fmt.Errorf("toml: %s: expected %s, got %T: %w", path, want, got, ErrTypeMismatch)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
