package typeexpr

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes type-expression errors.
type ErrorCode string

const (
	// CodeMalformed indicates a structurally invalid expression: bad
	// tokens, a generic constructor missing its argument, or a map
	// without exactly two type arguments.
	CodeMalformed ErrorCode = "MALFORMED_TYPE_EXPRESSION"

	// CodeTypeParsing indicates an unrecognized constructor name.
	CodeTypeParsing ErrorCode = "TYPE_PARSING"

	// CodeUnsupportedMapKey indicates a map key that resolves to neither
	// String nor an enum.
	CodeUnsupportedMapKey ErrorCode = "UNSUPPORTED_MAP_KEY"
)

// Error is a typed type-expression error. Every failure in this package
// is returned as *Error; nothing panics on malformed input.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Expr is the offending expression or token.
	Expr string

	// Message is a human-readable description.
	Message string

	// Err is the underlying parser error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %s: %v", e.Code, e.Expr, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %q: %s", e.Code, e.Expr, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsMalformed returns true for MALFORMED_TYPE_EXPRESSION errors.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == CodeMalformed
}

// IsTypeParsing returns true for TYPE_PARSING errors.
func IsTypeParsing(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == CodeTypeParsing
}

// IsUnsupportedMapKey returns true for UNSUPPORTED_MAP_KEY errors.
func IsUnsupportedMapKey(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == CodeUnsupportedMapKey
}

func newMalformed(expr, message string) *Error {
	return &Error{Code: CodeMalformed, Expr: expr, Message: message}
}
