package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the raw parsed manifest, mirroring the authored YAML shape
// exactly. Mappings decode through namedEntries so that declaration order
// survives into the IR.
type Document struct {
	Types    TypesSection              `yaml:"types"`
	Features namedEntries[FeatureBody] `yaml:"features"`
	Channels []string                  `yaml:"channels"`
}

// TypesSection holds the user-declared type namespaces.
type TypesSection struct {
	Enums   namedEntries[EnumBody]   `yaml:"enums"`
	Objects namedEntries[ObjectBody] `yaml:"objects"`
}

// EnumBody is the body of one enum declaration.
type EnumBody struct {
	Description string                    `yaml:"description"`
	Variants    namedEntries[VariantBody] `yaml:"variants"`
}

// VariantBody is the body of one enum variant.
type VariantBody struct {
	Description string `yaml:"description"`
}

// ObjectBody is the body of one object declaration.
type ObjectBody struct {
	Description string                  `yaml:"description"`
	Failable    bool                    `yaml:"failable"`
	Fields      namedEntries[FieldBody] `yaml:"fields"`
}

// FieldBody is the body of one object field. Default is kept as a raw
// node so an absent default and an explicit null stay distinguishable:
// absent leaves the zero node (IsZero), explicit null is a scalar node
// with the null tag. A value node is used because yaml.v3 only decodes
// scalars into value nodes, not pointers.
type FieldBody struct {
	Description string    `yaml:"description"`
	Required    bool      `yaml:"required"`
	Type        string    `yaml:"type"`
	Default     yaml.Node `yaml:"default"`
}

// FeatureBody is the body of one feature declaration.
type FeatureBody struct {
	Description string                     `yaml:"description"`
	Variables   namedEntries[VariableBody] `yaml:"variables"`
	Default     yaml.Node                  `yaml:"default"`
}

// VariableBody is the body of one feature variable.
type VariableBody struct {
	Description string    `yaml:"description"`
	Type        string    `yaml:"type"`
	Default     yaml.Node `yaml:"default"`
}

// namedEntries is an order-preserving decode of a YAML mapping: each
// entry keeps the key as Name and the value as Body, in document order.
type namedEntries[T any] []namedEntry[T]

type namedEntry[T any] struct {
	Name string
	Body T
}

// UnmarshalYAML implements yaml.Unmarshaler for namedEntries.
func (m *namedEntries[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	out := make(namedEntries[T], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var e namedEntry[T]
		if err := node.Content[i].Decode(&e.Name); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&e.Body); err != nil {
			return err
		}
		out = append(out, e)
	}
	*m = out
	return nil
}

// checkFields rejects unknown keys in a mapping node. yaml.Node.Decode
// does not honor the decoder's KnownFields setting, so strictness inside
// namedEntries bodies is enforced here.
func checkFields(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		known := false
		for _, f := range allowed {
			if key == f {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: field %s not found", node.Content[i].Line, key)
		}
	}
	return nil
}

// UnmarshalYAML implements strict decoding for EnumBody.
func (b *EnumBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description", "variants"); err != nil {
		return err
	}
	type plain EnumBody
	return node.Decode((*plain)(b))
}

// UnmarshalYAML implements strict decoding for VariantBody.
func (b *VariantBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description"); err != nil {
		return err
	}
	type plain VariantBody
	return node.Decode((*plain)(b))
}

// UnmarshalYAML implements strict decoding for ObjectBody.
func (b *ObjectBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description", "failable", "fields"); err != nil {
		return err
	}
	type plain ObjectBody
	return node.Decode((*plain)(b))
}

// UnmarshalYAML implements strict decoding for FieldBody.
func (b *FieldBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description", "required", "type", "default"); err != nil {
		return err
	}
	type plain FieldBody
	return node.Decode((*plain)(b))
}

// UnmarshalYAML implements strict decoding for FeatureBody.
func (b *FeatureBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description", "variables", "default"); err != nil {
		return err
	}
	type plain FeatureBody
	return node.Decode((*plain)(b))
}

// UnmarshalYAML implements strict decoding for VariableBody.
func (b *VariableBody) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, "description", "type", "default"); err != nil {
		return err
	}
	type plain VariableBody
	return node.Decode((*plain)(b))
}

// Parse decodes a manifest document from r with strict field validation,
// so typos in top-level keys surface as errors instead of silently
// dropped sections.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDeserialization, Message: "failed to parse YAML", Err: err}
	}
	return &doc, nil
}

// ParseFile reads and decodes a manifest document from path. The file is
// read once into memory; no handle outlives the call.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeIO, Path: path, Message: "failed to read manifest", Err: err}
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return doc, nil
}
