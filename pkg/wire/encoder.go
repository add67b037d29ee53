package wire

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// VariantMarshaler is the encode-side counterpart of VariantUnmarshaler.
// A nil payload encodes the unit form "Name"; any other payload encodes
// {"Name":<payload>}.
type VariantMarshaler interface {
	MarshalVariant() (name string, payload any, err error)
}

// Escape rewrites text for embedding inside a quoted wire string:
// backslashes double first, then quotes gain a backslash. Backslash
// substitution must precede quote substitution so newly introduced
// backslashes are not escaped twice. The decoder's two-pass unescape undoes
// exactly these substitutions in the inverse order.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// MarshalColumns renders the parenthesized column-name list of a struct in
// field declaration order, e.g. (id,name,age). It pairs with MarshalValues
// to form an INSERT statement.
func MarshalColumns(v any) (string, error) {
	names, err := Fields(v)
	if err != nil {
		return "", err
	}
	return "(" + strings.Join(names, ",") + ")", nil
}

// MarshalValues renders the parenthesized value list of a struct in field
// declaration order, every scalar quoted, e.g. ("0","John","30").
func MarshalValues(v any) (string, error) {
	vals, err := FieldValues(v)
	if err != nil {
		return "", err
	}
	return "(" + strings.Join(vals, ",") + ")", nil
}

// MarshalKeyValues renders the brace-delimited key-value object of a struct,
// e.g. {"id":"0","name":"John","age":"30"}. The output is exactly what
// Unmarshal consumes: round-tripping a record through MarshalKeyValues and
// Unmarshal reproduces it.
func MarshalKeyValues(v any) (string, error) {
	rv, fields, err := structOf(v)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f.name)
		b.WriteString(`":`)
		if err := encodeValue(&b, rv.Field(f.index)); err != nil {
			return "", err
		}
	}
	b.WriteByte('}')
	return b.String(), nil
}

// FieldValues returns the encoded value of each serializable field in
// declaration order. Callers that need per-column text (assignment lists,
// filtered inserts) combine it with Fields.
func FieldValues(v any) ([]string, error) {
	rv, fields, err := structOf(v)
	if err != nil {
		return nil, err
	}

	vals := make([]string, len(fields))
	for i, f := range fields {
		var b strings.Builder
		if err := encodeValue(&b, rv.Field(f.index)); err != nil {
			return nil, err
		}
		vals[i] = b.String()
	}
	return vals, nil
}

func structOf(v any) (reflect.Value, []structField, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, nil, fmt.Errorf("wire: marshal of nil %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("wire: marshal of non-struct type %T", v)
	}
	return rv, cachedFields(rv.Type()), nil
}

// encodeValue writes one value in wire form: quoted scalars, bare booleans,
// bare null for absent options, recursive arrays, objects, and variants.
func encodeValue(b *strings.Builder, rv reflect.Value) error {
	if rv.IsValid() && rv.Kind() != reflect.Pointer {
		if m, ok := valueMarshaler(rv); ok {
			return encodeVariant(b, m)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteByte('"')
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		b.WriteByte('"')
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteByte('"')
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		b.WriteByte('"')
		return nil

	case reflect.String:
		b.WriteByte('"')
		b.WriteString(Escape(rv.String()))
		b.WriteByte('"')
		return nil

	case reflect.Pointer:
		if rv.IsNil() {
			// Absence is the bare literal, never the string "null".
			b.WriteString("null")
			return nil
		}
		if m, ok := valueMarshaler(rv); ok {
			return encodeVariant(b, m)
		}
		return encodeValue(b, rv.Elem())

	case reflect.Interface:
		if rv.IsNil() {
			b.WriteString("null")
			return nil
		}
		return encodeValue(b, rv.Elem())

	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeValue(b, rv.Index(i)); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil

	case reflect.Map:
		return encodeMap(b, rv)

	case reflect.Struct:
		fields := cachedFields(rv.Type())
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(f.name)
			b.WriteString(`":`)
			if err := encodeValue(b, rv.Field(f.index)); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

// encodeMap writes map entries in sorted key order so output is
// deterministic.
func encodeMap(b *strings.Builder, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(Escape(k))
		b.WriteString(`":`)
		kv := reflect.ValueOf(k).Convert(rv.Type().Key())
		if err := encodeValue(b, rv.MapIndex(kv)); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func encodeVariant(b *strings.Builder, m VariantMarshaler) error {
	name, payload, err := m.MarshalVariant()
	if err != nil {
		return err
	}
	if payload == nil {
		b.WriteByte('"')
		b.WriteString(Escape(name))
		b.WriteByte('"')
		return nil
	}
	b.WriteString(`{"`)
	b.WriteString(Escape(name))
	b.WriteString(`":`)
	if err := encodeValue(b, reflect.ValueOf(payload)); err != nil {
		return err
	}
	b.WriteByte('}')
	return nil
}

func valueMarshaler(rv reflect.Value) (VariantMarshaler, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	if m, ok := rv.Interface().(VariantMarshaler); ok {
		return m, true
	}
	if rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(VariantMarshaler); ok {
			return m, true
		}
	}
	return nil, false
}
