package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddAndLookup(t *testing.T) {
	var l List
	require.NoError(t, l.AddString(CodeContentType, "application/json"))
	require.NoError(t, l.AddPair(CodeUserProperty, "trace-id", "abc123"))

	assert.Equal(t, 2, l.Len())
	assert.False(t, l.Empty())
	assert.True(t, l.Contains(CodeContentType))
	assert.True(t, l.Contains(CodeUserProperty))
	assert.False(t, l.Contains(CodeTopicAlias))

	p, err := l.Get(CodeContentType, 0)
	require.NoError(t, err)
	s, err := p.Text()
	require.NoError(t, err)
	assert.Equal(t, "application/json", s)

	p, err = l.Get(CodeUserProperty, 0)
	require.NoError(t, err)
	pair, err := p.Pair()
	require.NoError(t, err)
	assert.Equal(t, StringPair{Key: "trace-id", Value: "abc123"}, pair)
}

func TestListAddErrors(t *testing.T) {
	var l List

	assert.ErrorIs(t, l.AddInt(CodeContentType, 1), ErrTypeMismatch)
	assert.ErrorIs(t, l.AddInt(CodeTopicAlias, 65536), ErrValueOutOfRange)
	assert.ErrorIs(t, l.AddString(CodeTopicAlias, "x"), ErrTypeMismatch)
	assert.ErrorIs(t, l.AddBinary(CodeContentType, nil), ErrTypeMismatch)
	assert.ErrorIs(t, l.AddPair(CodeContentType, "a", "b"), ErrTypeMismatch)
	assert.ErrorIs(t, l.AddInt(Code(0x42), 1), ErrUnknownCode)

	// Failed adds leave the list untouched.
	assert.True(t, l.Empty())
}

func TestListDuplicates(t *testing.T) {
	var l List
	require.NoError(t, l.AddPair(CodeUserProperty, "k1", "v1"))
	require.NoError(t, l.AddPair(CodeUserProperty, "k2", "v2"))
	require.NoError(t, l.AddPair(CodeUserProperty, "k3", "v3"))

	assert.Equal(t, 3, l.Count(CodeUserProperty))
	assert.Equal(t, 0, l.Count(CodeTopicAlias))

	want := []StringPair{
		{Key: "k1", Value: "v1"},
		{Key: "k2", Value: "v2"},
		{Key: "k3", Value: "v3"},
	}
	for i, w := range want {
		p, err := l.Get(CodeUserProperty, i)
		require.NoError(t, err)
		pair, err := p.Pair()
		require.NoError(t, err)
		assert.Equal(t, w, pair, "occurrence %d", i)
	}

	_, err := l.Get(CodeUserProperty, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Get(CodeUserProperty, -1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Get(CodeTopicAlias, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAt(t *testing.T) {
	var l List
	require.NoError(t, l.AddInt(CodeTopicAlias, 1))
	require.NoError(t, l.AddInt(CodeReceiveMax, 2))

	p, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, CodeTopicAlias, p.Code())

	p, err = l.At(1)
	require.NoError(t, err)
	assert.Equal(t, CodeReceiveMax, p.Code())

	_, err = l.At(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.At(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.Equal(t, CodeReceiveMax, l.Index(1).Code())
	assert.Panics(t, func() { l.Index(2) })
}

func TestListAddClones(t *testing.T) {
	p, err := NewBinary(CodeCorrelationData, []byte{7, 8})
	require.NoError(t, err)

	var l List
	l.Add(p)
	p.data[0] = 0

	got, err := l.At(0)
	require.NoError(t, err)
	b, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 8}, b)
}

func TestNewListClones(t *testing.T) {
	p, err := NewBinary(CodeAuthData, []byte{1})
	require.NoError(t, err)

	l := NewList(p)
	p.data[0] = 9

	got, err := l.At(0)
	require.NoError(t, err)
	b, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, b)
}

func TestListClone(t *testing.T) {
	var l List
	require.NoError(t, l.AddBinary(CodeCorrelationData, []byte{1, 2, 3}))
	require.NoError(t, l.AddString(CodeContentType, "a"))

	c := l.Clone()
	require.Equal(t, 2, c.Len())

	// Mutating the source's storage must not reach the clone.
	l.props[0].data[0] = 9
	p, err := c.At(0)
	require.NoError(t, err)
	b, err := p.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	// Clearing the source leaves the clone intact.
	l.Clear()
	assert.Equal(t, 2, c.Len())
}

func TestListTake(t *testing.T) {
	var l List
	require.NoError(t, l.AddInt(CodeTopicAlias, 1))
	require.NoError(t, l.AddString(CodeContentType, "text/plain"))

	m := l.Take()
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 2, m.Len())

	p, err := m.Get(CodeContentType, 0)
	require.NoError(t, err)
	s, err := p.Text()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", s)

	// The drained list stays usable.
	require.NoError(t, l.AddInt(CodeReceiveMax, 5))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, m.Len())
}

func TestListClear(t *testing.T) {
	var l List
	require.NoError(t, l.AddInt(CodeTopicAlias, 1))

	l.Clear()
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())

	// Clearing twice is harmless, as is clearing a zero value.
	l.Clear()
	assert.True(t, l.Empty())

	var zero List
	zero.Clear()
	assert.True(t, zero.Empty())
}

func TestListAll(t *testing.T) {
	var l List
	require.NoError(t, l.AddString(CodeContentType, "a"))
	require.NoError(t, l.AddPair(CodeUserProperty, "k1", "v1"))
	require.NoError(t, l.AddPair(CodeUserProperty, "k2", "v2"))

	var codes []Code
	for p := range l.All() {
		codes = append(codes, p.Code())
	}
	assert.Equal(t, []Code{CodeContentType, CodeUserProperty, CodeUserProperty}, codes)

	// Breaking early stops the sequence.
	n := 0
	for range l.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	// The sequence restarts from the top on each range.
	n = 0
	for range l.All() {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestListZeroValue(t *testing.T) {
	var l List
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Contains(CodeContentType))
	assert.Equal(t, 0, l.Count(CodeUserProperty))

	_, err := l.Get(CodeContentType, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.At(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	for range l.All() {
		t.Fatal("empty list yielded a property")
	}
}
