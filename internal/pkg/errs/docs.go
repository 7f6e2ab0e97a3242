// Package errs provides standardized error types for the manufacturing order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced order does not exist
//   - IllegalTransitionError, UnknownStateError: the order state machine rejected a move
//   - InsufficientQuantityError: a stock or supply shortfall
//   - SchedulerIntegrationError: the external scheduler call failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels; the HTTP adapter
// maps them onto response codes.
package errs
