// Package errors provides structured error types for the image-interop library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the image format being processed, a detail message and
// the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTruncated).
//		Format("png").
//		Detail("IHDR chunk ends at %d", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownFormat(data)
//	err := errors.AllocationFailed(errors.PhaseAlloc, size)
//
// The C ABI never sees these values: it reports failure as a NULL result.
// All errors implement the standard error interface and support errors.Is/As.
package errors
