// Package errors defines the error types returned by the constant pool and
// class registry.
//
// # Error Boundary
//
// Failures fall into three classes:
//
//   - Malformed input: a constant pool that cannot be decoded. Reported as
//     a [ParseError] that names the section, entry and byte offset.
//
//   - Internal consistency: an index that the pool never produced, or a
//     builtin class missing from a registry. Reported as an
//     [InternalError]; the Must* accessors panic with one.
//
//   - Absence: Find* lookups that come up empty. These are not errors and
//     are reported through a boolean result.
package errors

import (
	"fmt"
	"strings"
)

// Location identifies a position inside a serialized constant pool.
type Location struct {
	Section string // Section name, e.g. "multiname"
	Entry   int    // 1-based entry index within the section (0 for the count)
	Offset  int    // Byte offset from the start of the pool
}

// String returns a formatted string representation of the location.
func (l Location) String() string {
	var b strings.Builder
	if l.Section != "" {
		b.WriteString(l.Section)
		if l.Entry > 0 {
			fmt.Fprintf(&b, "[%d]", l.Entry)
		}
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "at offset %d", l.Offset)
	return b.String()
}

// IsZero returns true if the location has not been set.
func (l Location) IsZero() bool {
	return l.Section == "" && l.Entry == 0 && l.Offset == 0
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}
