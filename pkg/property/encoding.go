package property

import (
	"encoding/binary"
	"unicode/utf8"
)

// MaxVarInt is the largest value representable as a variable byte integer.
const MaxVarInt = 268435455

// MaxBytes is the largest length a string or binary value can carry on the
// wire (two byte length prefix).
const MaxBytes = 65535

// EncodeVarInt encodes a variable byte integer into buf and returns the number
// of bytes written. Returns 0 if the value is too large or the buffer is too
// small.
// MQTT 5.0 Section 1.5.5
func EncodeVarInt(buf []byte, value uint32) int {
	if value > MaxVarInt {
		return 0
	}

	i := 0
	for {
		if i >= len(buf) {
			return 0
		}
		encodedByte := byte(value & 0x7F)
		value >>= 7
		if value > 0 {
			encodedByte |= 0x80
		}
		buf[i] = encodedByte
		i++
		if value == 0 {
			break
		}
	}
	return i
}

// DecodeVarInt decodes a variable byte integer from buf.
// Returns the value, number of bytes consumed, and success flag.
// Returns (0, 0, false) on malformed or incomplete data.
// MQTT 5.0 Section 1.5.5
func DecodeVarInt(buf []byte) (value uint32, n int, ok bool) {
	var multiplier uint32 = 1

	for i := 0; i < len(buf) && i < 4; i++ {
		encodedByte := buf[i]
		value += uint32(encodedByte&0x7F) * multiplier

		if encodedByte&0x80 == 0 {
			return value, i + 1, true
		}

		multiplier *= 128
		if multiplier > 128*128*128 {
			return 0, 0, false // Malformed: more than 4 bytes
		}
	}

	return 0, 0, false // Incomplete
}

// VarIntSize returns the number of bytes needed to encode a value as a
// variable byte integer.
func VarIntSize(value uint32) int {
	switch {
	case value < 128:
		return 1
	case value < 16384:
		return 2
	case value < 2097152:
		return 3
	default:
		return 4
	}
}

// EncodeUint16 encodes a 16-bit unsigned integer in big-endian order.
// Returns 2 on success, 0 if the buffer is too small.
func EncodeUint16(buf []byte, value uint16) int {
	if len(buf) < 2 {
		return 0
	}
	binary.BigEndian.PutUint16(buf, value)
	return 2
}

// DecodeUint16 decodes a 16-bit unsigned integer from big-endian bytes.
// Returns the value, 2 bytes consumed, and success flag.
func DecodeUint16(buf []byte) (value uint16, n int, ok bool) {
	if len(buf) < 2 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(buf), 2, true
}

// EncodeUint32 encodes a 32-bit unsigned integer in big-endian order.
// Returns 4 on success, 0 if the buffer is too small.
func EncodeUint32(buf []byte, value uint32) int {
	if len(buf) < 4 {
		return 0
	}
	binary.BigEndian.PutUint32(buf, value)
	return 4
}

// DecodeUint32 decodes a 32-bit unsigned integer from big-endian bytes.
// Returns the value, 4 bytes consumed, and success flag.
func DecodeUint32(buf []byte) (value uint32, n int, ok bool) {
	if len(buf) < 4 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint32(buf), 4, true
}

// EncodeString encodes a UTF-8 string with a 2-byte length prefix.
// Returns the number of bytes written, or 0 on error.
// MQTT 5.0 Section 1.5.4
func EncodeString(buf []byte, s string) int {
	slen := len(s)
	if slen > MaxBytes {
		return 0
	}
	if len(buf) < 2+slen {
		return 0
	}
	binary.BigEndian.PutUint16(buf, uint16(slen))
	copy(buf[2:], s)
	return 2 + slen
}

// EncodeBytes encodes binary data with a 2-byte length prefix.
// Returns the number of bytes written, or 0 on error.
// MQTT 5.0 Section 1.5.6
func EncodeBytes(buf []byte, data []byte) int {
	dlen := len(data)
	if dlen > MaxBytes {
		return 0
	}
	if len(buf) < 2+dlen {
		return 0
	}
	binary.BigEndian.PutUint16(buf, uint16(dlen))
	copy(buf[2:], data)
	return 2 + dlen
}

// DecodeString decodes a length-prefixed byte sequence from buf.
// Returns a slice referencing the original buffer (zero-copy), bytes
// consumed, and success flag. The caller must copy the data if it needs to
// outlive the buffer.
func DecodeString(buf []byte) (s []byte, n int, ok bool) {
	if len(buf) < 2 {
		return nil, 0, false
	}
	slen := int(binary.BigEndian.Uint16(buf))
	if len(buf) < 2+slen {
		return nil, 0, false
	}
	return buf[2 : 2+slen], 2 + slen, true
}

// DecodeStringCopy decodes a length-prefixed UTF-8 string from buf.
// Returns a copied string, bytes consumed, and success flag.
func DecodeStringCopy(buf []byte) (s string, n int, ok bool) {
	data, n, ok := DecodeString(buf)
	if !ok {
		return "", 0, false
	}
	return string(data), n, true
}

// ValidateUTF8 validates that a string is well-formed UTF-8 without null
// characters or surrogate code points, as the protocol requires of every
// UTF-8 encoded string field.
// MQTT 5.0 Section 1.5.4
func ValidateUTF8(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}

	for _, r := range s {
		if r == 0 {
			return ErrInvalidUTF8NullChar
		}
		// Surrogates are invalid in UTF-8 (utf8.ValidString already rejects them)
		if r >= 0xD800 && r <= 0xDFFF {
			return ErrInvalidUTF8
		}
	}

	return nil
}
