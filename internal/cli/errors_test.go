package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/fml/internal/manifest"
	"github.com/roach88/fml/internal/store"
	"github.com/roach88/fml/internal/typeexpr"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "io load error",
			err:      &manifest.LoadError{Code: manifest.ErrCodeIO, Message: "no such file"},
			wantCode: ErrCodeIO,
		},
		{
			name:     "deserialization load error",
			err:      &manifest.LoadError{Code: manifest.ErrCodeDeserialization, Message: "bad yaml"},
			wantCode: ErrCodeDeserialization,
		},
		{
			name:     "malformed type expression",
			err:      &typeexpr.Error{Code: typeexpr.CodeMalformed, Expr: "Option<", Message: "unexpected end of input"},
			wantCode: ErrCodeMalformedTypeExpr,
		},
		{
			name:     "unknown constructor",
			err:      &typeexpr.Error{Code: typeexpr.CodeTypeParsing, Expr: "Widget", Message: "not a recognized FML type"},
			wantCode: ErrCodeTypeParsing,
		},
		{
			name:     "unsupported map key",
			err:      &typeexpr.Error{Code: typeexpr.CodeUnsupportedMapKey, Expr: "Map<Int, String>", Message: "Int is not a recognized FML Map key type"},
			wantCode: ErrCodeUnsupportedMapKey,
		},
		{
			name: "unknown user type",
			err: &manifest.UnknownUserTypeError{
				Feature:  "banner",
				Variable: "placement",
				TypeExpr: "Playcement",
			},
			wantCode: ErrCodeUnknownUserType,
		},
		{
			name:     "wrapped type error",
			err:      fmt.Errorf("object %q field %q: %w", "Button", "color", &typeexpr.Error{Code: typeexpr.CodeTypeParsing, Expr: "Colour", Message: "not a recognized FML type"}),
			wantCode: ErrCodeTypeParsing,
		},
		{
			name:     "catalog not found",
			err:      fmt.Errorf("%w: deadbeef", store.ErrNotFound),
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("something else"),
			wantCode: ErrCodeGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := ClassifyError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestClassifyError_UnknownUserTypeWinsOverWrappedCause(t *testing.T) {
	cause := &typeexpr.Error{Code: typeexpr.CodeMalformed, Expr: "Option<", Message: "unexpected end of input"}
	err := &manifest.UnknownUserTypeError{
		Feature:  "banner",
		Variable: "placement",
		TypeExpr: "Option<",
		Err:      cause,
	}

	code, _ := ClassifyError(err)
	assert.Equal(t, ErrCodeUnknownUserType, code)
}
