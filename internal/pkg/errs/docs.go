// Package errs provides standardized error types for the marketplace engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConflictError: For expected concurrency conflicts carrying a reason code
//   - InsufficientBalanceError: For withdrawal requests exceeding the balance
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Conflict errors deserve a note: claim races, duplicate earnings recordings
// and capacity rejections are ordinary traffic under concurrent load. They
// carry a machine-readable reason code so callers can branch on the outcome,
// and they must not be reported as opaque failures.
package errs
