// Package errors provides structured error types for the dynvalue library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, the requested
// shape hint, the actual value shape, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
//		Path("transfer", "amount").
//		Hint("bytes").
//		Shape("variant").
//		Detail("cannot decode a variant into raw bytes").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShapeMismatch(errors.PhaseDecode, path, "bytes", "variant")
//	err := errors.LengthMismatch(errors.PhaseDecode, path, 2, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// Failures are terminal for the decode call that produced them; nothing is
// retried or recovered internally.
package errors
