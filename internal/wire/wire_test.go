package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintEncoding(t *testing.T) {
	tests := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{MaxU30, []byte{0xff, 0xff, 0xff, 0xff, 0x03}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		w := NewWriter()
		w.WriteU32(tt.value)
		require.NoError(t, w.Err())
		require.Equal(t, tt.expected, w.Bytes())

		r := NewReader(tt.expected)
		got, err := r.ReadU32()
		require.NoError(t, err)
		require.Equal(t, tt.value, got)
		require.Equal(t, len(tt.expected), r.Offset())
	}
}

func TestS32(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 42, -42, math.MaxInt32, math.MinInt32} {
		w := NewWriter()
		w.WriteS32(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadS32()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, 0, r.Remaining())
	}
}

func TestS32ExtendedForms(t *testing.T) {
	tests := []struct {
		data     []byte
		expected int32
	}{
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, -1},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x7f}, -1},
		{[]byte{0xd6, 0xff, 0xff, 0xff, 0x7f}, -42},
		{[]byte{0x80, 0x80, 0x80, 0x80, 0x78}, math.MinInt32},
		{[]byte{0x7f}, 127},
	}
	for _, tc := range tests {
		r := NewReader(tc.data)
		got, err := r.ReadS32()
		require.NoError(t, err, "% x", tc.data)
		require.Equal(t, tc.expected, got, "% x", tc.data)
		require.Equal(t, 0, r.Remaining())
	}

	_, err := NewReader([]byte{0xff, 0xff}).ReadS32()
	require.ErrorIs(t, err, ErrTruncated)
	_, err = NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}).ReadS32()
	require.ErrorIs(t, err, ErrOverflow)
}

func TestU30Overflow(t *testing.T) {
	w := NewWriter()
	w.WriteU30(MaxU30 + 1)
	require.ErrorIs(t, w.Err(), ErrOverflow)

	// Writes after an error are dropped.
	w.WriteU8(1)
	require.Empty(t, w.Bytes())

	r := NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0x0f})
	_, err := r.ReadU30()
	require.ErrorIs(t, err, ErrOverflow)
	require.Equal(t, 0, r.Offset())
}

func TestVarintTooLong(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := r.ReadU32()
	require.ErrorIs(t, err, ErrOverflow)
}

func TestTruncated(t *testing.T) {
	_, err := NewReader(nil).ReadU8()
	require.ErrorIs(t, err, ErrTruncated)

	_, err = NewReader([]byte{0x80, 0x80}).ReadU32()
	require.ErrorIs(t, err, ErrTruncated)

	_, err = NewReader([]byte{1, 2, 3}).ReadD64()
	require.ErrorIs(t, err, ErrTruncated)

	_, err = NewReader([]byte{0x05, 'a', 'b'}).ReadString()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDoubleAndString(t *testing.T) {
	w := NewWriter()
	w.WriteD64(3.5)
	w.WriteString("héllo")
	w.WriteString("")
	require.NoError(t, w.Err())

	r := NewReader(w.Bytes())
	d, err := r.ReadD64()
	require.NoError(t, err)
	require.Equal(t, 3.5, d)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "héllo", s)

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "", s)
	require.Equal(t, 0, r.Remaining())
}
