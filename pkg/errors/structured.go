package errors

import (
	"bytes"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrMalformed indicates input bytes that do not decode as a constant pool.
	ErrMalformed ErrorKind = iota
	// ErrInternal indicates a violated invariant, such as an index the pool
	// never assigned or a missing builtin class.
	ErrInternal
	// ErrConfig indicates an invalid class description supplied by a caller.
	ErrConfig
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrMalformed:
		return "malformed constant pool"
	case ErrInternal:
		return "internal error"
	case ErrConfig:
		return "config error"
	default:
		return "error"
	}
}

// ParseError reports a constant pool that could not be decoded.
type ParseError struct {
	Message  string
	Location Location
	Cause    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", ErrMalformed, msg)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrMalformed, msg, e.Location)
}

// Unwrap returns the underlying cause of the error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Kind returns ErrMalformed.
func (e *ParseError) Kind() ErrorKind {
	return ErrMalformed
}

// FriendlyErrorMessage returns a multi-line description of the failure.
func (e *ParseError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "%s: %s\n", ErrMalformed, e.Message)
	if e.Location.Section != "" {
		fmt.Fprintf(&msg, " | section: %s\n", e.Location.Section)
	}
	if e.Location.Entry > 0 {
		fmt.Fprintf(&msg, " | entry:   %d\n", e.Location.Entry)
	}
	fmt.Fprintf(&msg, " | offset:  %d\n", e.Location.Offset)
	if e.Cause != nil {
		fmt.Fprintf(&msg, " | cause:   %s\n", e.Cause)
	}
	return msg.String()
}

// NewParseError creates a ParseError at the given location.
func NewParseError(loc Location, cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Cause:    cause,
	}
}

// InternalError reports a violated invariant. Callers are not expected to
// recover from it; it indicates a bug rather than bad input.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInternal, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Kind returns ErrInternal.
func (e *InternalError) Kind() ErrorKind {
	return ErrInternal
}

func NewInternalError(err error) *InternalError {
	return &InternalError{Err: err}
}

func InternalErrorf(format string, args ...any) *InternalError {
	return NewInternalError(fmt.Errorf(format, args...))
}

// ConfigError reports an invalid class or member description.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfig, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Kind returns ErrConfig.
func (e *ConfigError) Kind() ErrorKind {
	return ErrConfig
}

func ConfigErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}
