package cli

import (
	"errors"

	"github.com/roach88/fml/internal/manifest"
	"github.com/roach88/fml/internal/store"
	"github.com/roach88/fml/internal/typeexpr"
)

// Error codes for CLI output. Codes are grouped:
// E0xx for loading and infrastructure, E1xx for compilation.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeIO              = "E002" // Manifest file could not be read
	ErrCodeDeserialization = "E003" // Manifest is not valid YAML for the schema
	ErrCodeWriteFailed     = "E007" // File write error
	ErrCodeCatalog         = "E008" // Catalog database error
	ErrCodeNotFound        = "E009" // Catalog entry not found

	ErrCodeMalformedTypeExpr = "E101" // Type expression does not parse
	ErrCodeTypeParsing       = "E102" // Type expression names an unknown constructor
	ErrCodeUnsupportedMapKey = "E103" // Map key is neither String nor Enum
	ErrCodeUnknownUserType   = "E104" // Variable type is neither built-in nor user-defined
)

// ClassifyError maps a compilation or catalog error to a CLI error code
// and message. Unknown errors fall through to ErrCodeGeneric.
func ClassifyError(err error) (string, string) {
	var loadErr *manifest.LoadError
	if errors.As(err, &loadErr) {
		switch loadErr.Code {
		case manifest.ErrCodeIO:
			return ErrCodeIO, loadErr.Message
		case manifest.ErrCodeDeserialization:
			return ErrCodeDeserialization, loadErr.Message
		}
	}

	var unknownErr *manifest.UnknownUserTypeError
	if errors.As(err, &unknownErr) {
		return ErrCodeUnknownUserType, unknownErr.Error()
	}

	var typeErr *typeexpr.Error
	if errors.As(err, &typeErr) {
		switch typeErr.Code {
		case typeexpr.CodeMalformed:
			return ErrCodeMalformedTypeExpr, err.Error()
		case typeexpr.CodeTypeParsing:
			return ErrCodeTypeParsing, err.Error()
		case typeexpr.CodeUnsupportedMapKey:
			return ErrCodeUnsupportedMapKey, err.Error()
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		return ErrCodeNotFound, err.Error()
	}

	return ErrCodeGeneric, err.Error()
}
