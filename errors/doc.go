// Package errors provides structured error types for the device table.
//
// Errors are categorized by Phase (the operation that failed) and Kind (error
// category). The Error type carries the device id, the device's own status
// code when a shutdown fails, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSet, errors.KindAddressInUse).
//		ID(id).
//		Detail("slot already holds %q", existing.Name()).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseAllocate, id, capacity)
//	err := errors.ShutdownFailed(id, status)
//
// Callers match on kind alone with the exported sentinels:
//
//	if errors.Is(err, errors.ErrAddressInUse) { ... }
//
// and translate to POSIX-style codes with Errno.
package errors
