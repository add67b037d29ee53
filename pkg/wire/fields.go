package wire

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// structField describes one serializable struct field: its wire name and its
// index within the struct. Field order is declaration order and never
// changes; the database column order must match it.
type structField struct {
	name  string
	index int
}

// fieldCache maps reflect.Type to []structField. Derivation walks struct
// tags once per type; every later encode/decode hits the cache.
var fieldCache sync.Map

// cachedFields returns the serializable fields of a struct type in
// declaration order. The wire name comes from the `db` tag, falling back to
// the lower-cased Go field name. Unexported fields and fields tagged `db:"-"`
// are skipped.
func cachedFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}

	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("db")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fields = append(fields, structField{name: name, index: i})
	}

	fieldCache.Store(t, fields)
	return fields
}

// Fields returns the ordered wire field names of a struct (or pointer to
// struct). The order matches the column order the decoder expects when a row
// is rebuilt into the object form.
func Fields(v any) ([]string, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("wire: Fields of non-struct type %T", v)
	}

	fields := cachedFields(t)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names, nil
}
