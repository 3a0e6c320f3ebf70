// Package intern provides a hash-consing table: each distinct value is
// stored once and addressed by a stable 1-based index. Index 0 is never
// assigned, leaving it free to mean "absent" in the encodings built on top.
package intern

import (
	"hash/maphash"
	"iter"
	"math"
)

// Hasher supplies content equality and a hash consistent with it.
// Values that are Equal must have the same Hash.
type Hasher[T any] interface {
	Hash(v T) uint64
	Equal(a, b T) bool
}

// Table interns values of type T.
type Table[T any] struct {
	hasher  Hasher[T]
	entries []T
	buckets map[uint64][]int
}

// New returns an empty table using the given hasher.
func New[T any](hasher Hasher[T]) *Table[T] {
	return &Table[T]{
		hasher:  hasher,
		buckets: map[uint64][]int{},
	}
}

// Len returns the number of entries in the table.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Find returns the index of the first entry equal to v.
func (t *Table[T]) Find(v T) (int, bool) {
	for _, idx := range t.buckets[t.hasher.Hash(v)] {
		if t.hasher.Equal(t.entries[idx-1], v) {
			return idx, true
		}
	}
	return 0, false
}

// Intern returns the index of v, appending it if no equal entry exists.
// The boolean result reports whether a new entry was added.
func (t *Table[T]) Intern(v T) (int, bool) {
	if idx, ok := t.Find(v); ok {
		return idx, false
	}
	return t.Append(v), true
}

// Append adds v unconditionally and returns its index. Decoders use this
// to keep duplicate entries found in existing data at their original
// positions; Find keeps resolving to the earliest equal entry.
func (t *Table[T]) Append(v T) int {
	t.entries = append(t.entries, v)
	idx := len(t.entries)
	h := t.hasher.Hash(v)
	t.buckets[h] = append(t.buckets[h], idx)
	return idx
}

// At returns the entry with the given index.
func (t *Table[T]) At(idx int) (T, bool) {
	if idx < 1 || idx > len(t.entries) {
		var zero T
		return zero, false
	}
	return t.entries[idx-1], true
}

// All iterates over the entries in index order.
func (t *Table[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range t.entries {
			if !yield(i+1, v) {
				return
			}
		}
	}
}

var seed = maphash.MakeSeed()

// Comparable hashes and compares values with Go's built-in equality.
type Comparable[T comparable] struct{}

func (Comparable[T]) Hash(v T) uint64 {
	return maphash.Comparable(seed, v)
}

func (Comparable[T]) Equal(a, b T) bool {
	return a == b
}

// Float64 compares doubles by bit pattern, so NaN interns like any other
// value and 0 and -0 remain distinct entries.
type Float64 struct{}

func (Float64) Hash(v float64) uint64 {
	return maphash.Comparable(seed, math.Float64bits(v))
}

func (Float64) Equal(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// Hash is a streaming hash for composite values. Hashers for structured
// types feed their fields into it in a fixed order.
type Hash struct {
	h maphash.Hash
}

// NewHash returns a Hash ready for writing.
func NewHash() *Hash {
	var h Hash
	h.h.SetSeed(seed)
	return &h
}

// Byte mixes a single byte into the hash.
func (h *Hash) Byte(b byte) *Hash {
	h.h.WriteByte(b)
	return h
}

// String mixes s into the hash, followed by a terminator so adjacent
// strings cannot run together.
func (h *Hash) String(s string) *Hash {
	h.h.WriteString(s)
	h.h.WriteByte(0)
	return h
}

// Sum returns the accumulated hash.
func (h *Hash) Sum() uint64 {
	return h.h.Sum64()
}
