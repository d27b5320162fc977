// Package strataerrors provides structured error types for the strata
// composition pipeline.
//
// Import path: github.com/strataforge/strata/strataerrors
//
// This package enables programmatic error handling via [errors.Is] and
// [errors.As], allowing callers to distinguish between different categories
// of pipeline failure and implement appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types, one per taxonomy kind:
//
//   - [ParseError]: malformed recipe, invalid glob, invalid regex, invalid
//     structured-document syntax
//   - [CycleError]: a repository graph contains a loop
//   - [NotFoundError]: a source path, merge target, or section is missing
//   - [IOError]: clone, read, or write failure
//   - [LockError]: the memoization or cache lock was poisoned
//   - [UnsupportedError]: an operation is legal in the recipe surface but
//     not implemented at the core
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is:
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrCycle]: matches any [CycleError]
//   - [ErrNotFound]: matches any [NotFoundError]
//   - [ErrIO]: matches any [IOError]
//   - [ErrLock]: matches any [LockError]
//   - [ErrUnsupported]: matches any [UnsupportedError]
//
// # Usage Examples
//
// Check error category with errors.Is:
//
//	result, err := pipeline.Run(ctx, rec, opts)
//	if errors.Is(err, strataerrors.ErrCycle) {
//	    // recipe graph has a loop
//	}
//
// Extract error details with errors.As:
//
//	var cycleErr *strataerrors.CycleError
//	if errors.As(err, &cycleErr) {
//	    fmt.Printf("cycle through: %v\n", cycleErr.Chain)
//	}
//
// # Error Chaining
//
// [ParseError], [IOError] and [LockError] support chaining via the Cause
// field and Unwrap method, so callers can find root causes through the
// standard error chain. [CycleError], [NotFoundError], [UnsupportedError]
// and [ResourceLimitError] are leaf errors: their Unwrap returns nil.
package strataerrors
