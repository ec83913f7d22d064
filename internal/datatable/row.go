package datatable

import (
	"reflect"
	"strings"
	"sync"
)

// Row is one business entity displayed by a table. The table never mutates it.
type Row interface {
	// RowID returns the stable identity used for selection and actions.
	RowID() string
}

// Valuer lets a row resolve accessor paths itself instead of going through
// reflection.
type Valuer interface {
	Value(path string) (any, bool)
}

// MapRow is a Row backed by a plain map. The "id" key provides the identity.
type MapRow map[string]any

// RowID implements Row.
func (m MapRow) RowID() string {
	return stringify(m["id"])
}

// Value implements Valuer.
func (m MapRow) Value(path string) (any, bool) {
	return lookupMap(map[string]any(m), strings.Split(path, "."))
}

// Lookup resolves a dotted accessor path against a row. Missing fields,
// nil pointers and unknown keys yield (nil, false) rather than a panic.
func Lookup(row any, path string) (any, bool) {
	if row == nil || path == "" {
		return nil, false
	}
	if v, ok := row.(Valuer); ok {
		return v.Value(path)
	}
	parts := strings.Split(path, ".")
	if m, ok := row.(map[string]any); ok {
		return lookupMap(m, parts)
	}
	return lookupValue(reflect.ValueOf(row), parts)
}

func lookupMap(m map[string]any, parts []string) (any, bool) {
	value, ok := m[parts[0]]
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		return value, value != nil
	}
	return Lookup(value, strings.Join(parts[1:], "."))
}

func lookupValue(v reflect.Value, parts []string) (any, bool) {
	for _, part := range parts {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}
		switch v.Kind() {
		case reflect.Struct:
			idx, ok := fieldIndex(v.Type(), part)
			if !ok {
				return nil, false
			}
			v = v.FieldByIndex(idx)
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v = v.MapIndex(reflect.ValueOf(part).Convert(v.Type().Key()))
		default:
			return nil, false
		}
	}
	v = indirect(v)
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

var fieldCache sync.Map // map[fieldKey][]int

type fieldKey struct {
	typ  reflect.Type
	name string
}

// fieldIndex matches a path segment against json tag names first and Go field
// names second (case-insensitive).
func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	key := fieldKey{typ: t, name: name}
	if cached, ok := fieldCache.Load(key); ok {
		idx := cached.([]int)
		return idx, idx != nil
	}
	var found []int
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == name {
			found = f.Index
			break
		}
		if found == nil && tag != "-" && strings.EqualFold(f.Name, name) {
			found = f.Index
		}
	}
	fieldCache.Store(key, found)
	return found, found != nil
}
