package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal returns the TOML encoding of a struct or map[string]T
//
// Output is deterministic: keys sorted, scalars before tables, one table level
// Nil pointers, unexported fields and empty omitempty fields are skipped
func Marshal(v any) ([]byte, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct && val.Kind() != reflect.Map {
		return nil, fmt.Errorf("toml: root must be struct or map, got %s", val.Kind())
	}

	buf := new(bytes.Buffer)
	if err := encodeTable(buf, val, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	key string
	val reflect.Value
}

// encodeTable writes scalars first so keys are never captured by a later header
func encodeTable(w *bytes.Buffer, rv reflect.Value, table string) error {
	entries, err := collectEntries(rv)
	if err != nil {
		return err
	}

	var tables []entry
	for _, e := range entries {
		if isTable(e.val) {
			tables = append(tables, e)
			continue
		}
		w.WriteString(formatKey(e.key))
		w.WriteString(" = ")
		if err := encodeScalar(w, e.val); err != nil {
			return fmt.Errorf("toml: key %q: %w", e.key, err)
		}
		w.WriteByte('\n')
	}

	for _, e := range tables {
		if table != "" {
			return fmt.Errorf("toml: table %q nested in [%s] is not supported", e.key, table)
		}
		w.WriteString("\n[" + formatKey(e.key) + "]\n")
		if err := encodeTable(w, e.val, e.key); err != nil {
			return err
		}
	}
	return nil
}

func collectEntries(rv reflect.Value) ([]entry, error) {
	var entries []entry

	switch rv.Kind() {
	case reflect.Struct:
		typ := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			f := typ.Field(i)
			if !f.IsExported() {
				continue
			}
			key, omitEmpty, skip := fieldKey(f)
			if skip {
				continue
			}
			fv := deref(rv.Field(i))
			if !fv.IsValid() || omitEmpty && fv.IsZero() {
				continue
			}
			entries = append(entries, entry{key, fv})
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("toml: map key must be string, got %s", rv.Type().Key())
		}
		iter := rv.MapRange()
		for iter.Next() {
			fv := deref(iter.Value())
			if !fv.IsValid() {
				continue
			}
			entries = append(entries, entry{iter.Key().String(), fv})
		}
	default:
		return nil, fmt.Errorf("toml: cannot encode %s as table", rv.Kind())
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries, nil
}

// deref unwraps pointers and interfaces, nil yields the zero Value
func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isTable(v reflect.Value) bool {
	return v.Kind() == reflect.Struct || v.Kind() == reflect.Map
}

func encodeScalar(w *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		w.WriteString(quote(v.String()))
	case reflect.Bool:
		w.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		// Keep the decimal point so the value decodes as a float
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		w.WriteString(s)
	default:
		return fmt.Errorf("unsupported value kind %s", v.Kind())
	}
	return nil
}

func formatKey(k string) string {
	if isBareKey(k) {
		return k
	}
	return quote(k)
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
