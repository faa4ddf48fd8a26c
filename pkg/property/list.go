package property

import (
	"fmt"
	"iter"
)

// List is an ordered, duplicate-permitting sequence of properties. The zero
// value is an empty, usable list. A List owns its storage: Add stores a deep
// clone of its argument, Clone duplicates every element, and Take transfers
// the whole backing store in O(1), leaving the source empty. Assignment
// with = shares storage; use Clone or Take when independence matters.
//
// Some codes, such as User Property and Subscription Identifier, repeat by
// design. The list never enforces uniqueness for any code.
type List struct {
	props []Property
}

// NewList builds a list from clones of the given properties.
func NewList(props ...Property) List {
	var l List
	for _, p := range props {
		l.Add(p)
	}
	return l
}

// Add appends a deep clone of p. The list's storage never aliases the
// caller's property.
func (l *List) Add(p Property) {
	l.props = append(l.props, p.Clone())
}

// AddInt constructs a numeric property and appends it.
func (l *List) AddInt(code Code, value int64) error {
	p, err := NewInt(code, value)
	if err != nil {
		return err
	}
	l.props = append(l.props, p)
	return nil
}

// AddString constructs a UTF-8 string property and appends it.
func (l *List) AddString(code Code, s string) error {
	p, err := NewString(code, s)
	if err != nil {
		return err
	}
	l.props = append(l.props, p)
	return nil
}

// AddBinary constructs a binary data property and appends it.
func (l *List) AddBinary(code Code, data []byte) error {
	p, err := NewBinary(code, data)
	if err != nil {
		return err
	}
	l.props = append(l.props, p)
	return nil
}

// AddPair constructs a string pair property and appends it.
func (l *List) AddPair(code Code, name, value string) error {
	p, err := NewPair(code, name, value)
	if err != nil {
		return err
	}
	l.props = append(l.props, p)
	return nil
}

// Contains reports whether any property in the list has the given code.
func (l *List) Contains(code Code) bool {
	for i := range l.props {
		if l.props[i].code == code {
			return true
		}
	}
	return false
}

// Count returns the number of properties with the given code.
func (l *List) Count(code Code) int {
	n := 0
	for i := range l.props {
		if l.props[i].code == code {
			n++
		}
	}
	return n
}

// Get returns the idx-th property with the given code, counting matches in
// insertion order from zero. It fails with ErrNotFound when fewer than
// idx+1 matches exist.
func (l *List) Get(code Code, idx int) (Property, error) {
	if idx >= 0 {
		seen := 0
		for i := range l.props {
			if l.props[i].code != code {
				continue
			}
			if seen == idx {
				return l.props[i], nil
			}
			seen++
		}
	}
	return Property{}, fmt.Errorf("%w: %s[%d]", ErrNotFound, code, idx)
}

// At returns the property at position i in the whole list. It fails with
// ErrIndexOutOfRange when i is outside [0, Len()).
func (l *List) At(i int) (Property, error) {
	if i < 0 || i >= len(l.props) {
		return Property{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l.props))
	}
	return l.props[i], nil
}

// Index returns the property at position i without bounds checking; it
// panics when i is out of range. Callers that cannot guarantee the index
// use At.
func (l *List) Index(i int) Property {
	return l.props[i]
}

// Len returns the number of properties in the list.
func (l *List) Len() int { return len(l.props) }

// Empty reports whether the list holds no properties.
func (l *List) Empty() bool { return len(l.props) == 0 }

// All returns an iterator over the properties in insertion order. Iteration
// is read-only and restartable; concurrent readers are safe as long as
// nothing mutates the list.
func (l *List) All() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		for i := range l.props {
			if !yield(l.props[i]) {
				return
			}
		}
	}
}

// Clear drops every property and resets the list to empty. Safe on the zero
// value and after Take.
func (l *List) Clear() {
	l.props = nil
}

// Clone returns a deep copy: every element is duplicated along with its
// buffers, so mutating the source afterwards cannot affect the clone.
func (l *List) Clone() List {
	if len(l.props) == 0 {
		return List{}
	}
	props := make([]Property, len(l.props))
	for i := range l.props {
		props[i] = l.props[i].Clone()
	}
	return List{props: props}
}

// Take transfers the entire backing store to the returned list in O(1) and
// leaves the receiver empty. The receiver remains usable afterwards.
func (l *List) Take() List {
	out := List{props: l.props}
	l.props = nil
	return out
}

// EncodedSize returns the total encoded size of the list, including the
// leading variable byte integer length prefix.
func (l *List) EncodedSize() int {
	size := 0
	for i := range l.props {
		size += l.props[i].encodedSize()
	}
	return VarIntSize(uint32(size)) + size
}

// Encode writes the length prefix and every property in insertion order
// into buf. Returns the number of bytes written, or 0 if buf is too small
// or the encoded block would exceed the variable byte integer maximum.
func (l *List) Encode(buf []byte) int {
	size := 0
	for i := range l.props {
		size += l.props[i].encodedSize()
	}
	if size > MaxVarInt {
		return 0
	}
	if len(buf) < VarIntSize(uint32(size))+size {
		return 0
	}

	n := EncodeVarInt(buf, uint32(size))
	for i := range l.props {
		n += l.props[i].encode(buf[n:])
	}
	return n
}

// DecodeList decodes a length-prefixed property block from buf. Returns the
// list, bytes consumed, and any error. Decoded string and binary values are
// copied out of buf, so the list owns its storage.
func DecodeList(buf []byte) (List, int, error) {
	if len(buf) < 1 {
		return List{}, 0, ErrTruncated
	}

	propLen, n, ok := DecodeVarInt(buf)
	if !ok {
		return List{}, 0, fmt.Errorf("length prefix: %w", ErrMalformedVarInt)
	}
	if len(buf)-n < int(propLen) {
		return List{}, 0, ErrTruncated
	}
	if propLen == 0 {
		return List{}, n, nil
	}

	var l List
	pos := n
	end := n + int(propLen)

	for pos < end {
		p, consumed, err := decodeProperty(buf[pos:end])
		if err != nil {
			return List{}, 0, err
		}
		l.props = append(l.props, p)
		pos += consumed
	}

	return l, end, nil
}
