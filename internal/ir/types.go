package ir

// VariantDef represents one member of a declared enum.
type VariantDef struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// EnumDef represents a compiled enum declaration.
type EnumDef struct {
	Name     string       `json:"name"`
	Doc      string       `json:"doc"`
	Variants []VariantDef `json:"variants"`
}

// PropDef represents a field of an object or a variable of a feature.
//
// Default is nil when the manifest supplied no default (absent, not null);
// an explicit YAML null becomes Null{}. Defaults are opaque here: nothing
// in the front-end checks them against Typ, that is a generator concern.
type PropDef struct {
	Name     string  `json:"name"`
	Doc      string  `json:"doc"`
	Typ      TypeRef `json:"type"`
	Default  Value   `json:"default,omitempty"`
	Required bool    `json:"required,omitempty"`
}

// ObjectDef represents a compiled object declaration.
type ObjectDef struct {
	Name     string    `json:"name"`
	Doc      string    `json:"doc"`
	Failable bool      `json:"failable,omitempty"`
	Props    []PropDef `json:"props"`
}

// FeatureDef represents a compiled feature: a named bundle of typed,
// defaulted variables. Default is the feature-level default, present only
// when the manifest supplied one.
type FeatureDef struct {
	Name    string    `json:"name"`
	Doc     string    `json:"doc"`
	Props   []PropDef `json:"props"`
	Default Value     `json:"default,omitempty"`
}

// FeatureManifest is the IR root handed to code generators. It is an
// immutable snapshot: every def slice preserves declaration order from the
// source document, and nothing mutates it after lowering.
//
// Hints is reserved for later pipeline stages and is always empty here.
type FeatureManifest struct {
	EnumDefs    []EnumDef         `json:"enum_defs"`
	ObjDefs     []ObjectDef       `json:"obj_defs"`
	FeatureDefs []FeatureDef      `json:"feature_defs"`
	Hints       map[string]string `json:"hints"`
}
