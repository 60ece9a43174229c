package manifest

import (
	"errors"
	"fmt"
)

// LoadErrorCode categorizes manifest loading errors.
type LoadErrorCode string

const (
	// ErrCodeIO indicates the manifest document could not be read.
	ErrCodeIO LoadErrorCode = "IO"

	// ErrCodeDeserialization indicates the document does not match the
	// expected key/value shape.
	ErrCodeDeserialization LoadErrorCode = "DESERIALIZATION"
)

// LoadError represents a failure to read or decode a manifest document.
type LoadError struct {
	Code    LoadErrorCode
	Path    string // empty when the document came from a reader
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsIOError returns true if the error is an unreadable-document error.
// Uses errors.As to handle wrapped errors.
func IsIOError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == ErrCodeIO
}

// IsDeserializationError returns true if the error is a document-shape
// error.
func IsDeserializationError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == ErrCodeDeserialization
}

// UnknownUserTypeError reports a feature variable whose declared type
// matches neither a built-in constructor nor any declared enum or object
// name. It wraps the resolution error that triggered the symbol-table
// fallback.
type UnknownUserTypeError struct {
	Feature  string
	Variable string
	TypeExpr string
	Err      error
}

// Error implements the error interface.
func (e *UnknownUserTypeError) Error() string {
	return fmt.Sprintf("feature %q variable %q: %s is not a valid FML type or user defined type",
		e.Feature, e.Variable, e.TypeExpr)
}

func (e *UnknownUserTypeError) Unwrap() error {
	return e.Err
}

// IsUnknownUserType returns true for UnknownUserTypeError errors.
func IsUnknownUserType(err error) bool {
	var ue *UnknownUserTypeError
	return errors.As(err, &ue)
}
