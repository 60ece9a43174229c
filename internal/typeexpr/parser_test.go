package typeexpr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // expected Expr.String() rendering
	}{
		{"bare", "String", "String"},
		{"single_arg", "List<Int>", "List<Int>"},
		{"named_arg", "BundleText<cta_label>", "BundleText<cta_label>"},
		{"two_args", "Map<String, Int>", "Map<String, Int>"},
		{"nested", "List<Option<Map<String, Object<Button>>>>", "List<Option<Map<String, Object<Button>>>>"},
		{"whitespace", "  Map< Enum<PlayerProfile> ,\tList< String > > ", "Map<Enum<PlayerProfile>, List<String>>"},
		{"underscore_name", "BundleImage<splash_screen.hero>", "BundleImage<splash_screen.hero>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "List<Int"},
		{"dangling_close", "Int>"},
		{"parens", "Option(Something)"},
		{"lowercase_parens", "bundletext(something)"},
		{"empty_args", "BundleText<>"},
		{"numeric_arg", "BundleText<21>"},
		{"trailing_comma", "Map<String,>"},
		{"leading_angle", "<Int>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "expected malformed error, got %v", err)
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 64
	input := strings.Repeat("List<", depth) + "Int" + strings.Repeat(">", depth)

	expr, err := Parse(input)
	require.NoError(t, err)

	for i := 0; i < depth; i++ {
		require.Equal(t, "List", expr.Name)
		require.Len(t, expr.Args, 1)
		expr = expr.Args[0]
	}
	assert.Equal(t, "Int", expr.Name)
	assert.Empty(t, expr.Args)
}
