package wire

import "errors"

// Decode and encode failures. The set is closed: any malformed input maps to
// exactly one of these, compared with errors.Is. There is no recovery and no
// partial result; the first error aborts the whole decode.
var (
	// ErrEOF reports that the cursor was exhausted mid-parse.
	ErrEOF = errors.New("unexpected end of input")

	// ErrSyntax reports an unrecognized leading character during
	// self-describing dispatch.
	ErrSyntax = errors.New("unrecognized leading character")

	ErrExpectedBool       = errors.New("expected boolean literal")
	ErrExpectedString     = errors.New("expected quoted string")
	ErrExpectedNull       = errors.New("expected null")
	ErrExpectedArray      = errors.New("expected array")
	ErrExpectedArrayEnd   = errors.New("expected end of array")
	ErrExpectedArrayComma = errors.New("expected comma between array elements")
	ErrExpectedMap        = errors.New("expected map")
	ErrExpectedMapEnd     = errors.New("expected end of map")
	ErrExpectedMapComma   = errors.New("expected comma between map entries")
	ErrExpectedMapColon   = errors.New("expected colon after map key")
	ErrExpectedEnum       = errors.New("expected enum variant")

	// ErrTrailingChars reports unconsumed bytes after a complete top-level
	// value.
	ErrTrailingChars = errors.New("trailing characters after value")

	// ErrNumberSyntax reports a non-digit byte inside a quoted numeric
	// literal. ErrNumberRange reports a literal that does not fit the
	// target width.
	ErrNumberSyntax = errors.New("invalid digit in number")
	ErrNumberRange  = errors.New("number out of range")

	// ErrUnsupportedType reports a target shape the format does not carry:
	// floats, complex numbers, channels, functions.
	ErrUnsupportedType = errors.New("unsupported type")
)
