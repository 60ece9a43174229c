package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fml/internal/ir"
)

func TestLowerFrontEndRepresentation(t *testing.T) {
	result, err := CompileFile("testdata/fe/dialog_appearance.yaml")
	require.NoError(t, err)
	m := result.Manifest

	// Enums
	require.Len(t, m.EnumDefs, 1)
	enumDef := m.EnumDefs[0]
	assert.Equal(t, "PlayerProfile", enumDef.Name)
	assert.Equal(t, "This is an enum type", enumDef.Doc)
	assert.Contains(t, enumDef.Variants, ir.VariantDef{
		Name: "adult",
		Doc:  "This represents an adult player profile",
	})
	assert.Contains(t, enumDef.Variants, ir.VariantDef{
		Name: "child",
		Doc:  "This represents a child player profile",
	})

	// Objects
	require.Len(t, m.ObjDefs, 1)
	objDef := m.ObjDefs[0]
	assert.Equal(t, "Button", objDef.Name)
	assert.Equal(t, "This is a button object", objDef.Doc)
	assert.Contains(t, objDef.Props, ir.PropDef{
		Name:     "label",
		Doc:      "This is the label for the button",
		Typ:      ir.StringRef{},
		Required: true,
	})
	assert.Contains(t, objDef.Props, ir.PropDef{
		Name: "color",
		Doc:  "This is the color of the button",
		Typ:  ir.OptionRef{Item: ir.StringRef{}},
	})

	// Features
	require.Len(t, m.FeatureDefs, 1)
	featureDef := m.FeatureDefs[0]
	assert.Equal(t, "dialog-appearance", featureDef.Name)
	assert.Equal(t, "This is the appearance of the dialog", featureDef.Doc)
	assert.Nil(t, featureDef.Default)
	require.Len(t, featureDef.Props, 3)

	positive := featureDef.Props[0]
	assert.Equal(t, "positive", positive.Name)
	assert.Equal(t, "This is a positive button", positive.Doc)
	assert.Equal(t, ir.ObjectRef{Name: "Button"}, positive.Typ)
	assert.Equal(t, ir.Object{"label": ir.String("Ok then"), "color": ir.String("blue")}, positive.Default)

	negative := featureDef.Props[1]
	assert.Equal(t, "negative", negative.Name)
	assert.Equal(t, "This is a negative button", negative.Doc)
	assert.Equal(t, ir.ObjectRef{Name: "Button"}, negative.Typ)
	assert.Equal(t, ir.Object{"label": ir.String("Not this time"), "color": ir.String("red")}, negative.Default)

	background := featureDef.Props[2]
	assert.Equal(t, "background-color", background.Name)
	assert.Equal(t, "This is the background color", background.Doc)
	assert.Equal(t, ir.StringRef{}, background.Typ)
	assert.Equal(t, ir.String("white"), background.Default)

	// Hints are reserved for later stages.
	assert.Empty(t, m.Hints)
	assert.NotNil(t, m.Hints)

	// Channels pass through untouched.
	assert.Equal(t, []string{"release", "beta", "nightly"}, result.Channels)
}

func TestLowerDeterministic(t *testing.T) {
	first, err := CompileFile("testdata/fe/dialog_appearance.yaml")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := CompileFile("testdata/fe/dialog_appearance.yaml")
		require.NoError(t, err)
		assert.Equal(t, first.Manifest, again.Manifest)
		assert.Equal(t,
			ir.MustManifestHash(first.Manifest),
			ir.MustManifestHash(again.Manifest),
		)
	}
}

func TestLowerSymbolTableFallback(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums:
    PlayerProfile:
      description: profile
      variants:
        adult: {description: adult}
  objects:
    Button:
      description: button
      fields:
        label: {description: l, type: String}
features:
  appearance:
    description: d
    variables:
      profile:
        description: bare enum reference
        type: PlayerProfile
      button:
        description: bare object reference
        type: Button
`))
	require.NoError(t, err)

	result, err := Lower(doc)
	require.NoError(t, err)

	props := result.Manifest.FeatureDefs[0].Props
	require.Len(t, props, 2)
	assert.Equal(t, ir.EnumRef{Name: "PlayerProfile"}, props[0].Typ)
	assert.Equal(t, ir.ObjectRef{Name: "Button"}, props[1].Typ)
}

func TestLowerUnknownUserType(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums: {}
  objects: {}
features:
  broken:
    description: d
    variables:
      x:
        description: unknown type
        type: Widget
`))
	require.NoError(t, err)

	_, err = Lower(doc)
	require.Error(t, err)
	assert.True(t, IsUnknownUserType(err), "expected unknown user type error, got %v", err)
	assert.Contains(t, err.Error(), "Widget")

	var ue *UnknownUserTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "broken", ue.Feature)
	assert.Equal(t, "x", ue.Variable)
}

func TestLowerObjectFieldNoFallback(t *testing.T) {
	// Object fields resolve directly: a bare user-declared name in an
	// object field is an error even when the name is declared.
	doc, err := Parse(strings.NewReader(`
types:
  enums:
    Color:
      description: c
      variants:
        red: {description: r}
  objects:
    Button:
      description: b
      fields:
        color: {description: c, type: Color}
features: {}
`))
	require.NoError(t, err)

	_, err = Lower(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `object "Button" field "color"`)
}

func TestLowerFeatureLevelDefault(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums: {}
  objects: {}
features:
  with-default:
    description: d
    variables:
      x: {description: x, type: Int, default: 3}
    default:
      x: 5
  without-default:
    description: d
    variables:
      y: {description: y, type: Boolean}
`))
	require.NoError(t, err)

	result, err := Lower(doc)
	require.NoError(t, err)

	withDefault := result.Manifest.FeatureDefs[0]
	assert.Equal(t, ir.Object{"x": ir.Int(5)}, withDefault.Default)
	assert.Equal(t, ir.Int(3), withDefault.Props[0].Default)

	withoutDefault := result.Manifest.FeatureDefs[1]
	assert.Nil(t, withoutDefault.Default)
	assert.Nil(t, withoutDefault.Props[0].Default)
}

func TestLowerMapTypedVariable(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
types:
  enums:
    Section:
      description: s
      variants:
        top: {description: t}
  objects: {}
features:
  layout:
    description: d
    variables:
      labels:
        description: per-section labels
        type: Map<Enum<Section>, String>
      counts:
        description: string-keyed counts
        type: Map<String, Int>
`))
	require.NoError(t, err)

	result, err := Lower(doc)
	require.NoError(t, err)

	props := result.Manifest.FeatureDefs[0].Props
	assert.Equal(t, ir.EnumMapRef{Key: ir.EnumRef{Name: "Section"}, Value: ir.StringRef{}}, props[0].Typ)
	assert.Equal(t, ir.StringMapRef{Value: ir.IntRef{}}, props[1].Typ)
}
