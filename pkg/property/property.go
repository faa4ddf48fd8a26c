package property

import (
	"bytes"
	"fmt"
)

// StringPair represents a key-value pair of UTF-8 strings.
type StringPair struct {
	Key   string
	Value string
}

// Property is a single MQTT 5.0 property: a code plus a value whose
// representation matches the code's wire kind. Use the New* constructors;
// they validate code, kind, and range before anything is stored, so a
// Property either exists fully formed or not at all. A Property owns its
// storage: binary data is copied in on construction and copied out on
// access, so caller buffers are never shared.
type Property struct {
	code Code
	num  uint32
	text string
	pair StringPair
	data []byte
}

// NewInt constructs a numeric property. The value must fit the wire width
// implied by the code: byte 0-255, two byte integer 0-65535, four byte
// integer 0-4294967295, variable byte integer 0-268435455.
func NewInt(code Code, value int64) (Property, error) {
	if !code.Valid() {
		return Property{}, fmt.Errorf("%w: 0x%02X", ErrUnknownCode, byte(code))
	}

	var max int64
	switch code.Kind() {
	case KindByte:
		max = 0xFF
	case KindTwoByteInt:
		max = 0xFFFF
	case KindFourByteInt:
		max = 0xFFFFFFFF
	case KindVarInt:
		max = MaxVarInt
	default:
		return Property{}, mismatchErr(code, "numeric")
	}

	if value < 0 || value > max {
		return Property{}, fmt.Errorf("%w: %d does not fit %s (%s)",
			ErrValueOutOfRange, value, code.Kind(), code)
	}

	return Property{code: code, num: uint32(value)}, nil
}

// NewString constructs a UTF-8 string property. The string must satisfy the
// protocol's UTF-8 rules and encode in at most 65535 bytes.
func NewString(code Code, s string) (Property, error) {
	if !code.Valid() {
		return Property{}, fmt.Errorf("%w: 0x%02X", ErrUnknownCode, byte(code))
	}
	if code.Kind() != KindString {
		return Property{}, mismatchErr(code, KindString.String())
	}
	if len(s) > MaxBytes {
		return Property{}, fmt.Errorf("%w: string of %d bytes exceeds %d",
			ErrValueOutOfRange, len(s), MaxBytes)
	}
	if err := ValidateUTF8(s); err != nil {
		return Property{}, fmt.Errorf("%s value: %w", code, err)
	}

	return Property{code: code, text: s}, nil
}

// NewBinary constructs a binary data property. The input buffer is copied
// before the constructor returns; the property never aliases it.
func NewBinary(code Code, data []byte) (Property, error) {
	if !code.Valid() {
		return Property{}, fmt.Errorf("%w: 0x%02X", ErrUnknownCode, byte(code))
	}
	if code.Kind() != KindBinary {
		return Property{}, mismatchErr(code, KindBinary.String())
	}
	if len(data) > MaxBytes {
		return Property{}, fmt.Errorf("%w: binary value of %d bytes exceeds %d",
			ErrValueOutOfRange, len(data), MaxBytes)
	}

	owned := make([]byte, len(data))
	copy(owned, data)
	return Property{code: code, data: owned}, nil
}

// NewPair constructs a string pair property such as User Property. Both
// strings are validated before either is stored, so construction is
// all-or-nothing.
func NewPair(code Code, name, value string) (Property, error) {
	if !code.Valid() {
		return Property{}, fmt.Errorf("%w: 0x%02X", ErrUnknownCode, byte(code))
	}
	if code.Kind() != KindStringPair {
		return Property{}, mismatchErr(code, KindStringPair.String())
	}
	if len(name) > MaxBytes || len(value) > MaxBytes {
		return Property{}, fmt.Errorf("%w: pair element exceeds %d bytes",
			ErrValueOutOfRange, MaxBytes)
	}
	if err := ValidateUTF8(name); err != nil {
		return Property{}, fmt.Errorf("%s name: %w", code, err)
	}
	if err := ValidateUTF8(value); err != nil {
		return Property{}, fmt.Errorf("%s value: %w", code, err)
	}

	return Property{code: code, pair: StringPair{Key: name, Value: value}}, nil
}

func mismatchErr(code Code, want string) error {
	return fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, code, code.Kind(), want)
}

// Code returns the property identifier.
func (p Property) Code() Code { return p.code }

// Kind returns the wire data type of the property's value.
func (p Property) Kind() Kind { return p.code.Kind() }

// Byte returns the value of a Byte property.
func (p Property) Byte() (byte, error) {
	if p.code.Kind() != KindByte {
		return 0, mismatchErr(p.code, KindByte.String())
	}
	return byte(p.num), nil
}

// Uint16 returns the value of a Two Byte Integer property.
func (p Property) Uint16() (uint16, error) {
	if p.code.Kind() != KindTwoByteInt {
		return 0, mismatchErr(p.code, KindTwoByteInt.String())
	}
	return uint16(p.num), nil
}

// Uint32 returns the value of a Four Byte Integer property.
func (p Property) Uint32() (uint32, error) {
	if p.code.Kind() != KindFourByteInt {
		return 0, mismatchErr(p.code, KindFourByteInt.String())
	}
	return p.num, nil
}

// VarInt returns the value of a Variable Byte Integer property.
func (p Property) VarInt() (uint32, error) {
	if p.code.Kind() != KindVarInt {
		return 0, mismatchErr(p.code, KindVarInt.String())
	}
	return p.num, nil
}

// Text returns the value of a UTF-8 String property.
func (p Property) Text() (string, error) {
	if p.code.Kind() != KindString {
		return "", mismatchErr(p.code, KindString.String())
	}
	return p.text, nil
}

// Bytes returns the value of a Binary Data property. The returned slice is
// a copy; mutating it does not affect the property.
func (p Property) Bytes() ([]byte, error) {
	if p.code.Kind() != KindBinary {
		return nil, mismatchErr(p.code, KindBinary.String())
	}
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out, nil
}

// Pair returns the value of a UTF-8 String Pair property.
func (p Property) Pair() (StringPair, error) {
	if p.code.Kind() != KindStringPair {
		return StringPair{}, mismatchErr(p.code, KindStringPair.String())
	}
	return p.pair, nil
}

// Int16 returns the value of a Two Byte Integer property as a signed
// integer. Values above 32767 wrap negative.
//
// Deprecated: protocol integers are unsigned. Use Uint16.
func (p Property) Int16() (int16, error) {
	v, err := p.Uint16()
	return int16(v), err
}

// Int32 returns the value of a Four Byte Integer property as a signed
// integer. Values above 2147483647 wrap negative.
//
// Deprecated: protocol integers are unsigned. Use Uint32.
func (p Property) Int32() (int32, error) {
	v, err := p.Uint32()
	return int32(v), err
}

// Clone returns a deep copy of the property. The clone owns an independent
// copy of any binary data.
func (p Property) Clone() Property {
	out := p
	if p.data != nil {
		out.data = make([]byte, len(p.data))
		copy(out.data, p.data)
	}
	return out
}

// Equal reports whether two properties carry the same code and value.
func (p Property) Equal(o Property) bool {
	if p.code != o.code {
		return false
	}
	switch p.code.Kind() {
	case KindString:
		return p.text == o.text
	case KindStringPair:
		return p.pair == o.pair
	case KindBinary:
		return bytes.Equal(p.data, o.data)
	default:
		return p.num == o.num
	}
}

// String renders the property as "Name: value" for logs and debug output.
func (p Property) String() string {
	switch p.code.Kind() {
	case KindString:
		return fmt.Sprintf("%s: %s", p.code, p.text)
	case KindStringPair:
		return fmt.Sprintf("%s: %s=%s", p.code, p.pair.Key, p.pair.Value)
	case KindBinary:
		return fmt.Sprintf("%s: 0x%X", p.code, p.data)
	default:
		return fmt.Sprintf("%s: %d", p.code, p.num)
	}
}

// encodedSize returns the wire size of the property including its ID byte.
func (p Property) encodedSize() int {
	switch p.code.Kind() {
	case KindByte:
		return 1 + 1
	case KindTwoByteInt:
		return 1 + 2
	case KindFourByteInt:
		return 1 + 4
	case KindVarInt:
		return 1 + VarIntSize(p.num)
	case KindString:
		return 1 + 2 + len(p.text)
	case KindBinary:
		return 1 + 2 + len(p.data)
	case KindStringPair:
		return 1 + 2 + len(p.pair.Key) + 2 + len(p.pair.Value)
	default:
		return 0
	}
}

// encode writes the property (ID byte plus value) into buf.
// Returns the number of bytes written, or 0 on a short buffer.
func (p Property) encode(buf []byte) int {
	if len(buf) < p.encodedSize() {
		return 0
	}
	buf[0] = byte(p.code)
	n := 1

	switch p.code.Kind() {
	case KindByte:
		buf[n] = byte(p.num)
		n++
	case KindTwoByteInt:
		n += EncodeUint16(buf[n:], uint16(p.num))
	case KindFourByteInt:
		n += EncodeUint32(buf[n:], p.num)
	case KindVarInt:
		n += EncodeVarInt(buf[n:], p.num)
	case KindString:
		n += EncodeString(buf[n:], p.text)
	case KindBinary:
		n += EncodeBytes(buf[n:], p.data)
	case KindStringPair:
		n += EncodeString(buf[n:], p.pair.Key)
		n += EncodeString(buf[n:], p.pair.Value)
	}
	return n
}

// decodeProperty reads one property starting at its ID byte. Decoded string
// and binary values are copied out of buf so the property owns its storage.
func decodeProperty(buf []byte) (Property, int, error) {
	if len(buf) < 1 {
		return Property{}, 0, ErrTruncated
	}

	code := Code(buf[0])
	if !code.Valid() {
		return Property{}, 0, fmt.Errorf("%w: 0x%02X", ErrUnknownCode, buf[0])
	}
	pos := 1

	switch code.Kind() {
	case KindByte:
		if pos >= len(buf) {
			return Property{}, 0, ErrTruncated
		}
		return Property{code: code, num: uint32(buf[pos])}, pos + 1, nil

	case KindTwoByteInt:
		v, n, ok := DecodeUint16(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		return Property{code: code, num: uint32(v)}, pos + n, nil

	case KindFourByteInt:
		v, n, ok := DecodeUint32(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		return Property{code: code, num: v}, pos + n, nil

	case KindVarInt:
		v, n, ok := DecodeVarInt(buf[pos:])
		if !ok {
			return Property{}, 0, fmt.Errorf("%s: %w", code, ErrMalformedVarInt)
		}
		return Property{code: code, num: v}, pos + n, nil

	case KindString:
		s, n, ok := DecodeStringCopy(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		if err := ValidateUTF8(s); err != nil {
			return Property{}, 0, fmt.Errorf("%s value: %w", code, err)
		}
		return Property{code: code, text: s}, pos + n, nil

	case KindBinary:
		raw, n, ok := DecodeString(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		data := make([]byte, len(raw))
		copy(data, raw)
		return Property{code: code, data: data}, pos + n, nil

	default: // KindStringPair
		key, n, ok := DecodeStringCopy(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		pos += n
		value, n, ok := DecodeStringCopy(buf[pos:])
		if !ok {
			return Property{}, 0, ErrTruncated
		}
		if err := ValidateUTF8(key); err != nil {
			return Property{}, 0, fmt.Errorf("%s name: %w", code, err)
		}
		if err := ValidateUTF8(value); err != nil {
			return Property{}, 0, fmt.Errorf("%s value: %w", code, err)
		}
		return Property{code: code, pair: StringPair{Key: key, Value: value}}, pos + n, nil
	}
}
