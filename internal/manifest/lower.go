package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fml/internal/ir"
	"github.com/roach88/fml/internal/typeexpr"
)

// Result holds the lowered IR plus the sections this front-end carries
// through untransformed.
type Result struct {
	Manifest *ir.FeatureManifest
	Channels []string
}

// Lower transforms a parsed document into the resolved IR. Sections are
// lowered in dependency order: enums, then objects, then the symbol
// table, then features. The returned manifest is a fresh value with no
// state shared across calls.
//
// Object field types resolve directly with no symbol-table fallback, so
// an object field cannot reference another user-declared type by bare
// name. Feature variables do get the fallback.
func Lower(doc *Document) (*Result, error) {
	enums := lowerEnums(doc.Types.Enums)

	objects, err := lowerObjects(doc.Types.Objects)
	if err != nil {
		return nil, err
	}

	symbols := NewSymbolTable(enums, objects)

	features, err := lowerFeatures(doc.Features, symbols)
	if err != nil {
		return nil, err
	}

	return &Result{
		Manifest: &ir.FeatureManifest{
			EnumDefs:    enums,
			ObjDefs:     objects,
			FeatureDefs: features,
			Hints:       map[string]string{},
		},
		Channels: doc.Channels,
	}, nil
}

// CompileFile parses and lowers a manifest document from path.
func CompileFile(path string) (*Result, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Lower(doc)
}

func lowerEnums(enums namedEntries[EnumBody]) []ir.EnumDef {
	defs := make([]ir.EnumDef, 0, len(enums))
	for _, e := range enums {
		variants := make([]ir.VariantDef, 0, len(e.Body.Variants))
		for _, v := range e.Body.Variants {
			variants = append(variants, ir.VariantDef{
				Name: v.Name,
				Doc:  v.Body.Description,
			})
		}
		defs = append(defs, ir.EnumDef{
			Name:     e.Name,
			Doc:      e.Body.Description,
			Variants: variants,
		})
	}
	return defs
}

func lowerObjects(objects namedEntries[ObjectBody]) ([]ir.ObjectDef, error) {
	defs := make([]ir.ObjectDef, 0, len(objects))
	for _, o := range objects {
		props := make([]ir.PropDef, 0, len(o.Body.Fields))
		for _, f := range o.Body.Fields {
			typ, err := typeexpr.ResolveString(f.Body.Type)
			if err != nil {
				return nil, fmt.Errorf("object %q field %q: %w", o.Name, f.Name, err)
			}

			def, err := defaultValue(f.Body.Default)
			if err != nil {
				return nil, fmt.Errorf("object %q field %q: %w", o.Name, f.Name, err)
			}

			props = append(props, ir.PropDef{
				Name:     f.Name,
				Doc:      f.Body.Description,
				Typ:      typ,
				Default:  def,
				Required: f.Body.Required,
			})
		}
		defs = append(defs, ir.ObjectDef{
			Name:     o.Name,
			Doc:      o.Body.Description,
			Failable: o.Body.Failable,
			Props:    props,
		})
	}
	return defs, nil
}

func lowerFeatures(features namedEntries[FeatureBody], symbols SymbolTable) ([]ir.FeatureDef, error) {
	defs := make([]ir.FeatureDef, 0, len(features))
	for _, f := range features {
		props := make([]ir.PropDef, 0, len(f.Body.Variables))
		for _, v := range f.Body.Variables {
			typ, err := resolveVariableType(f.Name, v.Name, v.Body.Type, symbols)
			if err != nil {
				return nil, err
			}

			def, err := defaultValue(v.Body.Default)
			if err != nil {
				return nil, fmt.Errorf("feature %q variable %q: %w", f.Name, v.Name, err)
			}

			props = append(props, ir.PropDef{
				Name:    v.Name,
				Doc:     v.Body.Description,
				Typ:     typ,
				Default: def,
			})
		}

		featDefault, err := defaultValue(f.Body.Default)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.Name, err)
		}

		defs = append(defs, ir.FeatureDef{
			Name:    f.Name,
			Doc:     f.Body.Description,
			Props:   props,
			Default: featDefault,
		})
	}
	return defs, nil
}

// resolveVariableType resolves a feature variable's declared type,
// falling back to the symbol table when the expression is not a
// recognized built-in. The fallback fires on ANY resolution error, so a
// declared name shadowing nothing built-in still resolves.
func resolveVariableType(feature, variable, typeExpr string, symbols SymbolTable) (ir.TypeRef, error) {
	typ, err := typeexpr.ResolveString(typeExpr)
	if err == nil {
		return typ, nil
	}

	if ref, ok := symbols.Lookup(strings.TrimSpace(typeExpr)); ok {
		return ref, nil
	}

	return nil, &UnknownUserTypeError{
		Feature:  feature,
		Variable: variable,
		TypeExpr: typeExpr,
		Err:      err,
	}
}

// defaultValue converts a raw default node into an opaque ir.Value. A
// zero node (default absent) maps to a nil Value; an explicit null maps
// to ir.Null.
func defaultValue(node yaml.Node) (ir.Value, error) {
	if node.IsZero() {
		return nil, nil
	}

	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, &LoadError{Code: ErrCodeDeserialization, Message: "failed to decode default value", Err: err}
	}

	val, err := ir.FromGo(raw)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDeserialization, Message: "unsupported default value", Err: err}
	}
	return val, nil
}
