// Package errors provides the error definitions shared by the task store,
// the key-value backends and the coordinator. It defines sentinel errors,
// typed errors carrying context, and classification helpers.
//
// # Error Types
//
// Domain errors:
//   - StorageError: a key-value backend refused a read or a write
//
// Semantic errors:
//   - NotFoundError: a task id did not match anything
//   - AlreadyExistsError: a task id is already taken
//   - ValidationError: user input or a task failed validation
//
// # Usage
//
//	err := errors.NewStorageError("save", "taskManager_tasks", errors.ErrStorageFull)
//	if errors.Is(err, errors.ErrStorageFull) { ... }
//
//	var notFound *errors.NotFoundError
//	if errors.As(err, &notFound) { ... }
//
// Store operations never panic on expected conditions. A missing task or
// a full storage quota is a routine outcome returned as one of these
// values; callers inspect it with Is/As or render it with UserMessage.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Task-related sentinel errors
var (
	// ErrTaskNotFound indicates that no task has the requested id.
	ErrTaskNotFound = New("task not found")
	// ErrDuplicateTask indicates that a task with the same id already exists.
	ErrDuplicateTask = New("task already exists")
)

// Storage-related sentinel errors
var (
	// ErrStorageUnavailable indicates that the backing store cannot be used.
	ErrStorageUnavailable = New("storage unavailable")
	// ErrStorageFull indicates that a write would exceed the storage quota.
	ErrStorageFull = New("storage quota exceeded")
	// ErrStoreCorrupted indicates that the persisted blob cannot be decoded.
	ErrStoreCorrupted = New("stored data corrupted")
	// ErrEncode indicates that the collection could not be serialised.
	ErrEncode = New("encode failed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TaskmgrError is the base interface for the typed errors in this package.
type TaskmgrError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// -----------------------------------------------------------------------------
// Domain Errors
// -----------------------------------------------------------------------------

// StorageError reports a failed read or write against a key-value slot.
//
// Example:
//
//	err := errors.NewStorageError("save", "taskManager_tasks", errors.ErrStorageFull)
//	fmt.Println(err) // "storage error [op=save, key=taskManager_tasks]: storage quota exceeded"
type StorageError struct {
	baseError
	Op  string
	Key string
}

// NewStorageError creates a StorageError. Full or unavailable storage is
// marked retryable: the user can free space or fix the backend and retry.
func NewStorageError(op, key string, cause error) *StorageError {
	retryable := errors.Is(cause, ErrStorageFull) || errors.Is(cause, ErrStorageUnavailable)
	return &StorageError{
		baseError: baseError{
			message:   op,
			cause:     cause,
			severity:  SeverityError,
			retryable: retryable,
		},
		Op:  op,
		Key: key,
	}
}

// WithSeverity sets the error severity.
func (e *StorageError) WithSeverity(s Severity) *StorageError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *StorageError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("key=%s", e.Key))
	}

	prefix := "storage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("storage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return prefix
}

// Is checks if this error matches the target.
func (e *StorageError) Is(target error) bool {
	if _, ok := target.(*StorageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("task", "abc123")
//	fmt.Println(err) // "task 'abc123' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError. A "task" resource also
// matches ErrTaskNotFound.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	var cause error
	if resourceType == "task" {
		cause = ErrTaskNotFound
	}
	return &NotFoundError{
		baseError: baseError{
			message:   fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			cause:     cause,
			severity:  SeverityWarning,
			retryable: false,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError. A "task"
// resource also matches ErrDuplicateTask.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	var cause error
	if resourceType == "task" {
		cause = ErrDuplicateTask
	}
	return &AlreadyExistsError{
		baseError: baseError{
			message:   fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			cause:     cause,
			severity:  SeverityWarning,
			retryable: false,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("must not be empty").WithField("title")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:   message,
			severity:  SeverityWarning,
			retryable: false,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Message returns the bare validation message without context.
func (e *ValidationError) Message() string {
	return e.message
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var tmErr TaskmgrError
	if As(err, &tmErr) {
		return tmErr.IsRetryable()
	}

	return Is(err, ErrStorageFull) || Is(err, ErrStorageUnavailable)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TaskmgrError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var tmErr TaskmgrError
	if As(err, &tmErr) {
		return tmErr.Severity()
	}

	return SeverityError
}

// UserMessage returns a short message suitable for the status line.
// fallback is used when err carries nothing safe to show.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if As(err, &validation) {
		switch validation.Field {
		case "", "title", "dueDate":
			return "Please enter a valid task title and due date."
		}
		return fmt.Sprintf("Invalid %s: %s.", validation.Field, validation.message)
	}

	switch {
	case Is(err, ErrTaskNotFound):
		return "Task not found."
	case Is(err, ErrDuplicateTask):
		return "A task with that id already exists."
	case Is(err, ErrStorageFull):
		return fallback + " Storage is full."
	}
	return fallback
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
