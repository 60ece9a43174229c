package ir

import (
	"encoding/json"
	"fmt"
)

// TypeRef is a sealed interface representing a resolved FML type.
// Only the types in this file implement it. Container variants own their
// inner TypeRef exclusively; the model is a tree, never a graph.
//
// Invariant: EnumMapRef.Key always holds an EnumRef. The resolver enforces
// this at construction; nothing downstream re-checks it.
type TypeRef interface {
	typeRef() // Sealed - only these types implement it

	// String renders the type back as an FML type expression,
	// e.g. "Map<Enum<PlayerProfile>, List<String>>".
	String() string
}

// StringRef is the String primitive.
type StringRef struct{}

// IntRef is the Int primitive.
type IntRef struct{}

// BooleanRef is the Boolean primitive.
type BooleanRef struct{}

// BundleTextRef references a localized text resource by bundle key.
type BundleTextRef struct {
	Name string
}

// BundleImageRef references an image resource by bundle key.
type BundleImageRef struct {
	Name string
}

// EnumRef references a user-declared enum by name.
type EnumRef struct {
	Name string
}

// ObjectRef references a user-declared object by name.
type ObjectRef struct {
	Name string
}

// ListRef is a homogeneous list of Item.
type ListRef struct {
	Item TypeRef
}

// OptionRef marks Item as optional.
type OptionRef struct {
	Item TypeRef
}

// StringMapRef is a map with String keys. The key type is implied and
// never stored.
type StringMapRef struct {
	Value TypeRef
}

// EnumMapRef is a map keyed by an enum. Key always holds an EnumRef.
type EnumMapRef struct {
	Key   TypeRef
	Value TypeRef
}

func (StringRef) typeRef()      {}
func (IntRef) typeRef()         {}
func (BooleanRef) typeRef()     {}
func (BundleTextRef) typeRef()  {}
func (BundleImageRef) typeRef() {}
func (EnumRef) typeRef()        {}
func (ObjectRef) typeRef()      {}
func (ListRef) typeRef()        {}
func (OptionRef) typeRef()      {}
func (StringMapRef) typeRef()   {}
func (EnumMapRef) typeRef()     {}

func (StringRef) String() string        { return "String" }
func (IntRef) String() string           { return "Int" }
func (BooleanRef) String() string       { return "Boolean" }
func (r BundleTextRef) String() string  { return fmt.Sprintf("BundleText<%s>", r.Name) }
func (r BundleImageRef) String() string { return fmt.Sprintf("BundleImage<%s>", r.Name) }
func (r EnumRef) String() string        { return fmt.Sprintf("Enum<%s>", r.Name) }
func (r ObjectRef) String() string      { return fmt.Sprintf("Object<%s>", r.Name) }
func (r ListRef) String() string        { return fmt.Sprintf("List<%s>", r.Item) }
func (r OptionRef) String() string      { return fmt.Sprintf("Option<%s>", r.Item) }
func (r StringMapRef) String() string   { return fmt.Sprintf("Map<String, %s>", r.Value) }
func (r EnumMapRef) String() string     { return fmt.Sprintf("Map<%s, %s>", r.Key, r.Value) }

// Kind strings used in the JSON encoding of TypeRef.
const (
	KindString      = "string"
	KindInt         = "int"
	KindBoolean     = "boolean"
	KindBundleText  = "bundle_text"
	KindBundleImage = "bundle_image"
	KindEnum        = "enum"
	KindObject      = "object"
	KindList        = "list"
	KindOption      = "option"
	KindStringMap   = "string_map"
	KindEnumMap     = "enum_map"
)

// leafJSON is the encoding for argument-less primitives.
type leafJSON struct {
	Kind string `json:"kind"`
}

// namedJSON is the encoding for name-carrying leaves (bundles, enum and
// object references).
type namedJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// itemJSON is the encoding for single-argument containers.
type itemJSON struct {
	Kind string  `json:"kind"`
	Item TypeRef `json:"item"`
}

// MarshalJSON implements json.Marshaler for each TypeRef variant. The
// encoding is kind-tagged with a fixed field order so that plain
// json.Marshal of IR structs is already deterministic.
func (StringRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{KindString})
}

func (IntRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{KindInt})
}

func (BooleanRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{KindBoolean})
}

func (r BundleTextRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedJSON{KindBundleText, r.Name})
}

func (r BundleImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedJSON{KindBundleImage, r.Name})
}

func (r EnumRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedJSON{KindEnum, r.Name})
}

func (r ObjectRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(namedJSON{KindObject, r.Name})
}

func (r ListRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{KindList, r.Item})
}

func (r OptionRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{KindOption, r.Item})
}

func (r StringMapRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string  `json:"kind"`
		Value TypeRef `json:"value"`
	}{KindStringMap, r.Value})
}

func (r EnumMapRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string  `json:"kind"`
		Key   TypeRef `json:"key"`
		Value TypeRef `json:"value"`
	}{KindEnumMap, r.Key, r.Value})
}

// typeRefMap converts a TypeRef to a plain map for canonical JSON
// serialization. Mirrors the MarshalJSON encoding exactly.
func typeRefMap(t TypeRef) map[string]any {
	switch r := t.(type) {
	case StringRef:
		return map[string]any{"kind": KindString}
	case IntRef:
		return map[string]any{"kind": KindInt}
	case BooleanRef:
		return map[string]any{"kind": KindBoolean}
	case BundleTextRef:
		return map[string]any{"kind": KindBundleText, "name": r.Name}
	case BundleImageRef:
		return map[string]any{"kind": KindBundleImage, "name": r.Name}
	case EnumRef:
		return map[string]any{"kind": KindEnum, "name": r.Name}
	case ObjectRef:
		return map[string]any{"kind": KindObject, "name": r.Name}
	case ListRef:
		return map[string]any{"kind": KindList, "item": typeRefMap(r.Item)}
	case OptionRef:
		return map[string]any{"kind": KindOption, "item": typeRefMap(r.Item)}
	case StringMapRef:
		return map[string]any{"kind": KindStringMap, "value": typeRefMap(r.Value)}
	case EnumMapRef:
		return map[string]any{"kind": KindEnumMap, "key": typeRefMap(r.Key), "value": typeRefMap(r.Value)}
	default:
		panic(fmt.Sprintf("unknown TypeRef type: %T", t))
	}
}
