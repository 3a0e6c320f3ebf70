// Package wire implements the primitive encodings used by ABC modules:
// fixed bytes, the variable-length u30/u32/s32 integers, little-endian
// doubles and length-prefixed strings.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// MaxU30 is the largest value representable as a u30.
const MaxU30 = 1<<30 - 1

// maxVarintLen is the number of bytes a u30, u32 or s32 may occupy.
const maxVarintLen = 5

var (
	// ErrTruncated is returned when the input ends in the middle of a value.
	ErrTruncated = errors.New("unexpected end of data")

	// ErrOverflow is returned when an encoded integer does not fit its type.
	ErrOverflow = errors.New("integer overflow")
)

// Reader decodes ABC primitives from an in-memory buffer.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, ErrTruncated
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadU32 reads a variable-length unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	end := min(r.pos+maxVarintLen, len(r.data))
	v, n := binary.Uvarint(r.data[r.pos:end])
	switch {
	case n == 0 && end-r.pos == maxVarintLen:
		return 0, fmt.Errorf("%w: varint longer than %d bytes", ErrOverflow, maxVarintLen)
	case n == 0:
		return 0, ErrTruncated
	case n < 0 || v > math.MaxUint32:
		return 0, fmt.Errorf("%w: varint exceeds 32 bits", ErrOverflow)
	}
	r.pos += n
	return uint32(v), nil
}

// ReadU30 reads a variable-length integer whose value must fit in 30 bits.
func (r *Reader) ReadU30() (uint32, error) {
	start := r.pos
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if v > MaxU30 {
		r.pos = start
		return 0, fmt.Errorf("%w: %d does not fit in a u30", ErrOverflow, v)
	}
	return v, nil
}

// ReadS32 reads a variable-length signed 32-bit integer. Negative values
// are stored as the 5-byte encoding of their two's complement bit pattern.
// Bits of the fifth byte above bit 32 are ignored, so both zero-extended
// and sign-extended writers are accepted. Shorter forms are not
// sign-extended: 0x7f reads as 127.
func (r *Reader) ReadS32() (int32, error) {
	var v uint32
	for i := range maxVarintLen {
		if r.pos+i >= len(r.data) {
			return 0, ErrTruncated
		}
		b := r.data[r.pos+i]
		v |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			r.pos += i + 1
			return int32(v), nil
		}
	}
	return 0, fmt.Errorf("%w: varint longer than %d bytes", ErrOverflow, maxVarintLen)
}

// ReadD64 reads an 8-byte little-endian IEEE 754 double.
func (r *Reader) ReadD64() (float64, error) {
	if r.Remaining() < 8 {
		return 0, ErrTruncated
	}
	bits := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return math.Float64frombits(bits), nil
}

// ReadString reads a u30 byte length followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	size, err := r.ReadU30()
	if err != nil {
		return "", err
	}
	if int(size) > r.Remaining() {
		return "", fmt.Errorf("%w: string of %d bytes with %d remaining",
			ErrTruncated, size, r.Remaining())
	}
	s := string(r.data[r.pos : r.pos+int(size)])
	r.pos += int(size)
	return s, nil
}
