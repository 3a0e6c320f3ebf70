package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer encodes ABC primitives into a growing buffer. The first error
// encountered is sticky: later writes are ignored and Err reports it.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded data.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(b uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, b)
}

// WriteU32 appends a variable-length unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = binary.AppendUvarint(w.buf, uint64(v))
}

// WriteU30 appends a variable-length integer that must fit in 30 bits.
func (w *Writer) WriteU30(v uint32) {
	if w.err != nil {
		return
	}
	if v > MaxU30 {
		w.err = fmt.Errorf("%w: %d does not fit in a u30", ErrOverflow, v)
		return
	}
	w.WriteU32(v)
}

// WriteS32 appends a variable-length signed 32-bit integer.
func (w *Writer) WriteS32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteD64 appends an 8-byte little-endian IEEE 754 double.
func (w *Writer) WriteD64(v float64) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteString appends a u30 length followed by the bytes of s.
func (w *Writer) WriteString(s string) {
	if len(s) > MaxU30 {
		if w.err == nil {
			w.err = fmt.Errorf("%w: string of %d bytes", ErrOverflow, len(s))
		}
		return
	}
	w.WriteU30(uint32(len(s)))
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, s...)
}
