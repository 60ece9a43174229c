package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesDeclarationOrder(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums:
    Zebra:
      description: z
      variants:
        b: {description: b}
        a: {description: a}
    Alpha:
      description: a
      variants:
        z: {description: z}
  objects: {}
features: {}
channels: []
`))
	require.NoError(t, err)

	require.Len(t, doc.Types.Enums, 2)
	assert.Equal(t, "Zebra", doc.Types.Enums[0].Name)
	assert.Equal(t, "Alpha", doc.Types.Enums[1].Name)

	variants := doc.Types.Enums[0].Body.Variants
	require.Len(t, variants, 2)
	assert.Equal(t, "b", variants[0].Name)
	assert.Equal(t, "a", variants[1].Name)
}

func TestParseRejectsUnknownTopLevelField(t *testing.T) {
	_, err := Parse(strings.NewReader(`
types:
  enums: {}
  objects: {}
features: {}
channel: []
`))
	require.Error(t, err)
	assert.True(t, IsDeserializationError(err), "expected deserialization error, got %v", err)
}

func TestParseRejectsUnknownBodyField(t *testing.T) {
	// Typos inside namedEntries bodies must be caught too, even though
	// yaml.Node.Decode bypasses the decoder's KnownFields setting.
	_, err := Parse(strings.NewReader(`
types:
  enums: {}
  objects: {}
features:
  my-feature:
    description: d
    variable:
      x: {description: x, type: String}
`))
	require.Error(t, err)
	assert.True(t, IsDeserializationError(err))
	assert.Contains(t, err.Error(), "variable")
}

func TestParseDefaultAbsentVsNull(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums: {}
  objects: {}
features:
  f:
    description: d
    variables:
      absent: {description: a, type: String}
      explicit:
        description: e
        type: String
        default: null
      scalar:
        description: s
        type: String
        default: white
`))
	require.NoError(t, err)

	vars := doc.Features[0].Body.Variables
	require.Len(t, vars, 3)
	assert.True(t, vars[0].Body.Default.IsZero())

	explicit := vars[1].Body.Default
	assert.False(t, explicit.IsZero())
	assert.Equal(t, "!!null", explicit.Tag)

	var s string
	scalar := vars[2].Body.Default
	assert.False(t, scalar.IsZero())
	require.NoError(t, scalar.Decode(&s))
	assert.Equal(t, "white", s)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/fe/does_not_exist.yaml")
	require.Error(t, err)
	assert.True(t, IsIOError(err), "expected IO error, got %v", err)
	assert.Contains(t, err.Error(), "does_not_exist.yaml")
}

func TestParseNotYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("{{ not yaml"))
	require.Error(t, err)
	assert.True(t, IsDeserializationError(err))
}
