package property

import "errors"

// Sentinel errors for property construction, access, and coding.
var (
	// ErrTypeMismatch indicates a typed access or construction against the
	// wrong wire kind for the property's code.
	ErrTypeMismatch = errors.New("property type mismatch")

	// ErrValueOutOfRange indicates a value that does not fit the wire width
	// or length limit implied by the property's code.
	ErrValueOutOfRange = errors.New("property value out of range")

	// ErrNotFound indicates the requested (code, index) combination is absent.
	ErrNotFound = errors.New("property not found")

	// ErrIndexOutOfRange indicates positional access beyond the list bounds.
	ErrIndexOutOfRange = errors.New("property index out of range")

	// ErrUnknownCode indicates a code outside the MQTT 5.0 property set.
	ErrUnknownCode = errors.New("unknown property code")

	// ErrMalformedVarInt indicates a variable byte integer encoding that is
	// invalid (more than four bytes, or a value above the maximum).
	ErrMalformedVarInt = errors.New("malformed variable byte integer")

	// ErrTruncated indicates more data is needed to complete decoding.
	ErrTruncated = errors.New("truncated property data")

	// ErrInvalidUTF8 indicates a string value that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

	// ErrInvalidUTF8NullChar indicates a string value containing a null character.
	ErrInvalidUTF8NullChar = errors.New("UTF-8 string contains null character")
)
