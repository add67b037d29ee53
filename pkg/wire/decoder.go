package wire

import (
	"fmt"
	"reflect"
	"strings"
)

// VariantUnmarshaler is implemented by enum-like types. The decoder calls
// UnmarshalVariant with the variant name; dec is nil for a unit variant
// (a bare quoted string on the wire) and non-nil for newtype, tuple, and
// struct variants, positioned at the start of the payload.
type VariantUnmarshaler interface {
	UnmarshalVariant(name string, dec *Decoder) error
}

// Decoder walks a wire-format string left to right. Its only state is the
// remaining unconsumed input, which shrinks monotonically; consumed bytes are
// never re-read. A Decoder is not safe for concurrent use, but independent
// decodes share nothing.
type Decoder struct {
	in string
}

// Unmarshal decodes a complete wire-format value into v, which must be a
// non-nil pointer. Any unconsumed input after the top-level value is
// ErrTrailingChars.
func Unmarshal(input string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("wire: Unmarshal target must be a non-nil pointer, got %T", v)
	}
	d := &Decoder{in: input}
	if err := d.decode(rv.Elem()); err != nil {
		return err
	}
	if d.in != "" {
		return ErrTrailingChars
	}
	return nil
}

// Decode decodes the next value into v. It is the entry point for
// VariantUnmarshaler implementations reading their payload.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("wire: Decode target must be a non-nil pointer, got %T", v)
	}
	return d.decode(rv.Elem())
}

// Cursor primitives.

func (d *Decoder) peekByte() (byte, error) {
	if len(d.in) == 0 {
		return 0, ErrEOF
	}
	return d.in[0], nil
}

func (d *Decoder) nextByte() (byte, error) {
	c, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	d.in = d.in[1:]
	return c, nil
}

// consumeLiteral consumes lit if the input starts with it.
func (d *Decoder) consumeLiteral(lit string) bool {
	if strings.HasPrefix(d.in, lit) {
		d.in = d.in[len(lit):]
		return true
	}
	return false
}

// Scalar parsers.

// parseBool takes the bare literal true or false. No whitespace tolerance,
// no case folding.
func (d *Decoder) parseBool() (bool, error) {
	if d.consumeLiteral("true") {
		return true, nil
	}
	if d.consumeLiteral("false") {
		return false, nil
	}
	if d.in == "" {
		return false, ErrEOF
	}
	return false, ErrExpectedBool
}

// parseNumberLiteral consumes a quoted literal and returns the raw bytes
// between the quotes. Numeric literals never contain escapes, so the closing
// quote is simply the next one.
func (d *Decoder) parseNumberLiteral() (string, error) {
	c, err := d.nextByte()
	if err != nil {
		return "", err
	}
	if c != '"' {
		return "", ErrExpectedString
	}
	end := strings.IndexByte(d.in, '"')
	if end < 0 {
		return "", ErrEOF
	}
	lit := d.in[:end]
	d.in = d.in[end+1:]
	return lit, nil
}

// parseUint decodes a quoted unsigned literal of the given bit width by
// manual digit accumulation. The empty literal decodes to zero and leading
// zeros are accepted; both mirror the wire producers.
func (d *Decoder) parseUint(bits int) (uint64, error) {
	lit, err := d.parseNumberLiteral()
	if err != nil {
		return 0, err
	}
	max := uint64(1)<<uint(bits) - 1
	if bits == 64 {
		max = ^uint64(0)
	}

	var acc uint64
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrNumberSyntax, lit)
		}
		digit := uint64(c - '0')
		if acc > (max-digit)/10 {
			return 0, fmt.Errorf("%w: %q exceeds uint%d", ErrNumberRange, lit, bits)
		}
		acc = acc*10 + digit
	}
	return acc, nil
}

// parseInt decodes a quoted signed literal. The sign is resolved by
// inspecting the first character inside the quotes; the magnitude is
// accumulated unsigned and negated at the end.
func (d *Decoder) parseInt(bits int) (int64, error) {
	lit, err := d.parseNumberLiteral()
	if err != nil {
		return 0, err
	}
	digits := lit
	neg := false
	if strings.HasPrefix(lit, "-") {
		digits = lit[1:]
		neg = true
	}

	// Largest magnitude that fits the width. The most negative value of a
	// width is one past the positive limit and stays unrepresentable here,
	// as it was for the producers of this format.
	max := uint64(1)<<uint(bits-1) - 1

	var acc uint64
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrNumberSyntax, lit)
		}
		digit := uint64(c - '0')
		if acc > (max-digit)/10 {
			return 0, fmt.Errorf("%w: %q exceeds int%d", ErrNumberRange, lit, bits)
		}
		acc = acc*10 + digit
	}
	if neg {
		return -int64(acc), nil
	}
	return int64(acc), nil
}

// parseString consumes a quoted string. The scan tracks an escaped flag: a
// backslash outside an active escape marks the next byte as escaped, so an
// escaped quote does not terminate the string. After slicing the raw
// content, exactly two substitutions run, in this order: \" -> " then
// \\ -> \. The order is load-bearing; the escape function applies the
// inverse substitutions in the inverse order. No other sequences are
// translated: a literal newline or tab between the quotes passes through
// byte for byte.
func (d *Decoder) parseString() (string, error) {
	c, err := d.nextByte()
	if err != nil {
		return "", err
	}
	if c != '"' {
		return "", ErrExpectedString
	}

	end := -1
	escaped := false
	for i := 0; i < len(d.in); i++ {
		switch {
		case escaped:
			escaped = false
		case d.in[i] == '\\':
			escaped = true
		case d.in[i] == '"':
			end = i
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return "", ErrEOF
	}

	raw := d.in[:end]
	d.in = d.in[end+1:]

	s := strings.ReplaceAll(raw, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s, nil
}

// Type-directed decode.

func (d *Decoder) decode(rv reflect.Value) error {
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(VariantUnmarshaler); ok {
			return d.decodeVariant(u)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.parseBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.parseInt(intBits(rv.Kind()))
		if err != nil {
			return err
		}
		rv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := d.parseUint(uintBits(rv.Kind()))
		if err != nil {
			return err
		}
		rv.SetUint(n)
		return nil

	case reflect.String:
		s, err := d.parseString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil

	case reflect.Pointer:
		return d.decodeOption(rv)

	case reflect.Slice:
		return d.decodeSlice(rv)

	case reflect.Array:
		return d.decodeArray(rv)

	case reflect.Map:
		return d.decodeMap(rv)

	case reflect.Struct:
		return d.decodeStruct(rv)

	case reflect.Interface:
		if rv.NumMethod() == 0 {
			return d.decodeAny(rv)
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())

	default:
		// Floats and byte buffers land here on purpose: the format never
		// carries them.
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

// decodeOption handles a nil-able target. The literal null yields absence;
// anything else delegates to the pointed-to type at the same cursor
// position, with no wrapper syntax consumed.
func (d *Decoder) decodeOption(rv reflect.Value) error {
	if d.consumeLiteral("null") {
		rv.SetZero()
		return nil
	}
	if rv.IsNil() {
		rv.Set(reflect.New(rv.Type().Elem()))
	}
	return d.decode(rv.Elem())
}

func (d *Decoder) decodeSlice(rv reflect.Value) error {
	c, err := d.nextByte()
	if err != nil {
		return err
	}
	if c != '[' {
		return ErrExpectedArray
	}

	out := reflect.MakeSlice(rv.Type(), 0, 4)
	first := true
	for {
		c, err := d.peekByte()
		if err != nil {
			return err
		}
		if c == ']' {
			d.in = d.in[1:]
			rv.Set(out)
			return nil
		}
		// Comma before every element except the first.
		if !first {
			nc, err := d.nextByte()
			if err != nil {
				return err
			}
			if nc != ',' {
				return ErrExpectedArrayComma
			}
		}
		first = false

		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := d.decode(elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
}

// decodeArray fills a fixed-length target: exactly len elements, then the
// closing bracket.
func (d *Decoder) decodeArray(rv reflect.Value) error {
	c, err := d.nextByte()
	if err != nil {
		return err
	}
	if c != '[' {
		return ErrExpectedArray
	}

	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			nc, err := d.nextByte()
			if err != nil {
				return err
			}
			if nc != ',' {
				return ErrExpectedArrayComma
			}
		}
		if err := d.decode(rv.Index(i)); err != nil {
			return err
		}
	}

	nc, err := d.nextByte()
	if err != nil {
		return err
	}
	if nc != ']' {
		return ErrExpectedArrayEnd
	}
	return nil
}

func (d *Decoder) decodeMap(rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())
	}
	c, err := d.nextByte()
	if err != nil {
		return err
	}
	if c != '{' {
		return ErrExpectedMap
	}

	out := reflect.MakeMap(rv.Type())
	first := true
	for {
		c, err := d.peekByte()
		if err != nil {
			return err
		}
		if c == '}' {
			d.in = d.in[1:]
			rv.Set(out)
			return nil
		}
		if !first {
			nc, err := d.nextByte()
			if err != nil {
				return err
			}
			if nc != ',' {
				return ErrExpectedMapComma
			}
		}
		first = false

		key, err := d.parseString()
		if err != nil {
			return err
		}
		if err := d.expectColon(); err != nil {
			return err
		}
		val := reflect.New(rv.Type().Elem()).Elem()
		if err := d.decode(val); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), val)
	}
}

// decodeStruct reads an object into struct fields matched by wire name.
// Unknown keys have their value decoded self-describingly and discarded.
// A field absent from the input is an error unless it is nil-able.
func (d *Decoder) decodeStruct(rv reflect.Value) error {
	c, err := d.nextByte()
	if err != nil {
		return err
	}
	if c != '{' {
		return ErrExpectedMap
	}

	fields := cachedFields(rv.Type())
	byName := make(map[string]int, len(fields))
	for _, f := range fields {
		byName[f.name] = f.index
	}
	seen := make(map[string]bool, len(fields))

	first := true
	for {
		c, err := d.peekByte()
		if err != nil {
			return err
		}
		if c == '}' {
			d.in = d.in[1:]
			break
		}
		if !first {
			nc, err := d.nextByte()
			if err != nil {
				return err
			}
			if nc != ',' {
				return ErrExpectedMapComma
			}
		}
		first = false

		key, err := d.parseString()
		if err != nil {
			return err
		}
		if err := d.expectColon(); err != nil {
			return err
		}

		idx, ok := byName[key]
		if !ok {
			var discard any
			if err := d.decode(reflect.ValueOf(&discard).Elem()); err != nil {
				return err
			}
			continue
		}
		if err := d.decode(rv.Field(idx)); err != nil {
			return err
		}
		seen[key] = true
	}

	for _, f := range fields {
		if seen[f.name] {
			continue
		}
		if rv.Field(f.index).Kind() == reflect.Pointer {
			continue
		}
		return fmt.Errorf("wire: missing field %q decoding %s", f.name, rv.Type())
	}
	return nil
}

// decodeAny dispatches on the first character when the target shape is not
// statically known. This is what makes the format self-describing.
func (d *Decoder) decodeAny(rv reflect.Value) error {
	c, err := d.peekByte()
	if err != nil {
		return err
	}
	switch {
	case c == 'n':
		if !d.consumeLiteral("null") {
			return ErrExpectedNull
		}
		rv.SetZero()
		return nil
	case c == 't' || c == 'f':
		b, err := d.parseBool()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(b))
		return nil
	case c == '"':
		s, err := d.parseString()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(s))
		return nil
	case c >= '0' && c <= '9':
		n, err := d.parseUint(64)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(n))
		return nil
	case c == '-':
		n, err := d.parseInt(64)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(n))
		return nil
	case c == '[':
		var seq []any
		sv := reflect.ValueOf(&seq).Elem()
		if err := d.decodeSlice(sv); err != nil {
			return err
		}
		rv.Set(sv)
		return nil
	case c == '{':
		var m map[string]any
		mv := reflect.ValueOf(&m).Elem()
		if err := d.decodeMap(mv); err != nil {
			return err
		}
		rv.Set(mv)
		return nil
	default:
		return ErrSyntax
	}
}

// decodeVariant reads an enum: a bare quoted string names a unit variant; an
// object carries exactly one entry whose key is the variant name and whose
// value is the payload.
func (d *Decoder) decodeVariant(u VariantUnmarshaler) error {
	c, err := d.peekByte()
	if err != nil {
		return err
	}
	if c == '"' {
		name, err := d.parseString()
		if err != nil {
			return err
		}
		return u.UnmarshalVariant(name, nil)
	}

	nc, err := d.nextByte()
	if err != nil {
		return err
	}
	if nc != '{' {
		return ErrExpectedEnum
	}
	name, err := d.parseString()
	if err != nil {
		return err
	}
	if err := d.expectColon(); err != nil {
		return err
	}
	if err := u.UnmarshalVariant(name, d); err != nil {
		return err
	}
	nc, err = d.nextByte()
	if err != nil {
		return err
	}
	if nc != '}' {
		return ErrExpectedMapEnd
	}
	return nil
}

func (d *Decoder) expectColon() error {
	c, err := d.nextByte()
	if err != nil {
		return err
	}
	if c != ':' {
		return ErrExpectedMapColon
	}
	return nil
}

func intBits(k reflect.Kind) int {
	switch k {
	case reflect.Int8:
		return 8
	case reflect.Int16:
		return 16
	case reflect.Int32:
		return 32
	default:
		return 64
	}
}

func uintBits(k reflect.Kind) int {
	switch k {
	case reflect.Uint8:
		return 8
	case reflect.Uint16:
		return 16
	case reflect.Uint32:
		return 32
	default:
		return 64
	}
}
