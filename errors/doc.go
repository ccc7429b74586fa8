// Package errors provides structured error types for the luadump library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a field path, the offending value, a detail message and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHeader, errors.KindHeaderMismatch).
//		Path("header", "version").
//		Value(0x54).
//		Detail("got 0x54, want 0x53").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 12, 8, 3)
//	err := errors.MalformedConstant(errors.PhaseDecode, path, 0x07, 40)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind are equal.
package errors
