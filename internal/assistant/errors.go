package assistant

import (
	"errors"
	"fmt"
)

// ErrorCode classifies persona store failures into the stable taxonomy
// callers branch on. Codes are part of the CLI's JSON contract; never
// renumber or reuse them.
type ErrorCode string

const (
	// ErrCodeNotFound means no record matched the scoped key.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeDuplicateName means a write collided with the per-store unique
	// name constraint.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"
	// ErrCodeMalformedKey means a scoped key failed to parse.
	ErrCodeMalformedKey ErrorCode = "MALFORMED_KEY"
	// ErrCodeStorageUnavailable means the backing store could not be opened
	// or queried.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	// ErrCodeInvalidRecord means a record failed boundary validation.
	ErrCodeInvalidRecord ErrorCode = "INVALID_RECORD"
)

// Error is a classified persona store failure. Exactly the fields relevant
// to the code are populated; the rest stay zero.
type Error struct {
	Code    ErrorCode // taxonomy code, always set
	Message string    // human-readable description, always set
	Key     string    // offending scoped key, for NOT_FOUND and MALFORMED_KEY
	Name    string    // colliding persona name, for DUPLICATE_NAME
	Path    string    // backing store path, for STORAGE_UNAVAILABLE
	Err     error     // underlying cause, when one exists
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that key matched no record in its store.
func NewNotFoundError(key ScopedID) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("assistant %q not found", key.String()),
		Key:     key.String(),
	}
}

// NewUpdateTargetError reports that an update addressed a local id with no
// existing row.
func NewUpdateTargetError(id int64) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("assistant id %d not found for update", id),
	}
}

// NewDuplicateNameError reports a collision on the per-store unique name
// constraint.
func NewDuplicateNameError(name string, err error) *Error {
	return &Error{
		Code:    ErrCodeDuplicateName,
		Message: fmt.Sprintf("assistant name %q already exists in this store", name),
		Name:    name,
		Err:     err,
	}
}

// NewMalformedKeyError reports a scoped key that failed to parse.
func NewMalformedKeyError(raw string, reason string) *Error {
	return &Error{
		Code:    ErrCodeMalformedKey,
		Message: fmt.Sprintf("malformed scoped key %q: %s", raw, reason),
		Key:     raw,
	}
}

// NewStorageError reports that the store at path could not serve the
// operation.
func NewStorageError(path string, err error) *Error {
	return &Error{
		Code:    ErrCodeStorageUnavailable,
		Message: fmt.Sprintf("store %s unavailable", path),
		Path:    path,
		Err:     err,
	}
}

// NewInvalidRecordError reports a record that failed boundary validation.
func NewInvalidRecordError(reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidRecord,
		Message: reason,
	}
}

// CodeOf extracts the taxonomy code from err, or "" when err is not a
// persona store error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND persona store error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsDuplicateName reports whether err is a DUPLICATE_NAME persona store
// error.
func IsDuplicateName(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateName
}

// IsMalformedKey reports whether err is a MALFORMED_KEY persona store error.
func IsMalformedKey(err error) bool {
	return CodeOf(err) == ErrCodeMalformedKey
}

// IsStorageUnavailable reports whether err is a STORAGE_UNAVAILABLE persona
// store error.
func IsStorageUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeStorageUnavailable
}

// IsInvalidRecord reports whether err is an INVALID_RECORD persona store
// error.
func IsInvalidRecord(err error) bool {
	return CodeOf(err) == ErrCodeInvalidRecord
}
