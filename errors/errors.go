package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHeader Phase = "header" // chunk header validation
	PhaseDecode Phase = "decode" // prototype tree decoding
	PhaseRender Phase = "render" // disassembly
	PhaseLoad   Phase = "load"   // reading input
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds       Kind = "out_of_bounds"
	KindHeaderMismatch    Kind = "header_mismatch"
	KindMalformedConstant Kind = "malformed_constant"
	KindLimitExceeded     Kind = "limit_exceeded"
	KindInvalidData       Kind = "invalid_data"
	KindUnknownOpcode     Kind = "unknown_opcode"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Field returns the last path element, or "" when the path is empty.
func (e *Error) Field() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	if len(path) > 0 {
		b.err.Path = path
	}
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an error for a read of need bytes at offset when only
// remaining bytes are left in the input.
func OutOfBounds(phase Phase, path []string, offset, need, remaining int) *Error {
	return New(phase, KindOutOfBounds).
		Path(path...).
		Value(offset).
		Detail("need %d bytes at offset %d, %d remaining", need, offset, remaining).
		Build()
}

// HeaderMismatch creates an error for a header field that did not match its
// expected constant.
func HeaderMismatch(field string, got, want any) *Error {
	return New(PhaseHeader, KindHeaderMismatch).
		Path("header", field).
		Value(got).
		Detail("%s mismatch: got %v, want %v", field, got, want).
		Build()
}

// MalformedConstant creates an error for an unrecognized constant tag byte
func MalformedConstant(phase Phase, path []string, tag byte, offset int) *Error {
	return New(phase, KindMalformedConstant).
		Path(path...).
		Value(tag).
		Detail("unknown constant tag 0x%02x at offset %d", tag, offset).
		Build()
}

// LimitExceeded creates an error for a declared size above a configured cap
func LimitExceeded(phase Phase, path []string, what string, value, limit uint64) *Error {
	return New(phase, KindLimitExceeded).
		Path(path...).
		Value(value).
		Detail("%s %d exceeds limit %d", what, value, limit).
		Build()
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return New(phase, KindInvalidData).Path(path...).Detail(detail).Build()
}

// UnknownOpcode creates an error for an opcode number outside the opcode table
func UnknownOpcode(phase Phase, op uint8) *Error {
	return New(phase, KindUnknownOpcode).
		Value(op).
		Detail("opcode %d is not defined", op).
		Build()
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}

// Load creates an input loading error
func Load(detail string, cause error) *Error {
	return New(PhaseLoad, KindInvalidInput).Cause(cause).Detail(detail).Build()
}
