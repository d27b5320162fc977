package strataerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing or structural-validation failure:
	// malformed recipe, invalid glob, invalid regex, invalid document syntax.
	ErrParse = errors.New("parse error")

	// ErrCycle indicates the repository graph contains a loop.
	ErrCycle = errors.New("cycle error")

	// ErrNotFound indicates a source path, merge target, or section is
	// missing.
	ErrNotFound = errors.New("not found")

	// ErrIO indicates a clone, read, or write failure.
	ErrIO = errors.New("io error")

	// ErrLock indicates the memoization or cache lock was poisoned.
	ErrLock = errors.New("lock error")

	// ErrUnsupported indicates an operation legal in the recipe surface
	// but not implemented at the core.
	ErrUnsupported = errors.New("unsupported operation")
)

// ParseError represents a failure to parse a recipe, a glob pattern, a
// regular expression, or a structured document (YAML/JSON/TOML/INI/
// Markdown).
type ParseError struct {
	// Path is the file path, VFS path, or source identifier.
	Path string
	// Line is the line number where the error occurred (0 if unknown).
	Line int
	// Column is the column number where the error occurred (0 if unknown).
	Column int
	// Message describes the parsing failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// CycleError represents a repository graph containing a loop: some
// (url, ref) pair would appear twice on a single root-to-leaf path of the
// Repository Tree.
type CycleError struct {
	// Chain is the sequence of "url@ref" identifiers from the root down to
	// the node that would re-introduce an already-visited pair.
	Chain []string
	// Repeated is the "url@ref" identifier that triggered the cycle.
	Repeated string
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	msg := "cycle error"
	if e.Repeated != "" {
		msg += ": " + e.Repeated + " already visited"
	}
	if len(e.Chain) > 0 {
		msg += fmt.Sprintf(" (path: %v)", e.Chain)
	}
	return msg
}

// Unwrap returns nil as CycleError has no underlying cause.
func (e *CycleError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// NotFoundError represents a missing source path, rename/copy source,
// or structured-merge target section.
type NotFoundError struct {
	// Kind describes what was not found, e.g. "vfs path", "merge section",
	// "cache entry".
	Kind string
	// Target is the path, section name, or key that was not found.
	Target string
	// Message provides additional context.
	Message string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	msg := "not found"
	if e.Kind != "" {
		msg += ": " + e.Kind
	}
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as NotFoundError has no underlying cause.
func (e *NotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IOError represents a clone, read, or write failure.
type IOError struct {
	// Op names the operation that failed, e.g. "clone", "read", "write",
	// "mkdir", "chmod".
	Op string
	// Path is the filesystem path or URL involved.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "io error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// LockError represents a poisoned memoization or on-disk cache lock.
type LockError struct {
	// Resource names the lock that was poisoned, e.g. "procmemo shard 7",
	// "reposcache <dir>".
	Resource string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *LockError) Error() string {
	msg := "lock error"
	if e.Resource != "" {
		msg += ": " + e.Resource
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LockError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LockError) Is(target error) bool {
	return target == ErrLock
}

// UnsupportedError represents an operation that is legal in the recipe
// surface but not implemented at the core (Template, TemplateVars, Tools).
type UnsupportedError struct {
	// Operation is the operation kind that was rejected.
	Operation string
	// Message provides additional context.
	Message string
}

// Error returns a human-readable error message.
func (e *UnsupportedError) Error() string {
	msg := "unsupported operation"
	if e.Operation != "" {
		msg += ": " + e.Operation
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as UnsupportedError has no underlying cause.
func (e *UnsupportedError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ResourceLimitError represents a resource exhaustion condition, such as a
// path-expression array write whose index exceeds the configured pad limit.
// It is reported through ErrParse since, like a malformed document, it is
// detected while structurally interpreting input rather than during I/O.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "array_pad".
	ResourceType string
	// Limit is the configured maximum value.
	Limit int64
	// Actual is the value that exceeded the limit.
	Actual int64
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d, actual: %d)", e.Limit, e.Actual)
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrParse
}
