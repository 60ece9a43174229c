package manifest

import (
	"github.com/roach88/fml/internal/ir"
)

// SymbolTable is an immutable registry mapping every declared enum and
// object name to its TypeRef. It is built once per manifest, after enums
// and objects are lowered and before any feature is, and is consulted
// only as the fallback for feature-variable types.
//
// Forward references work for free: by the time features lower, every
// declared name is already present.
type SymbolTable struct {
	refs map[string]ir.TypeRef
}

// NewSymbolTable builds the registry from the lowered enum and object
// definitions. Names are not deduplicated across the two namespaces;
// when an enum and an object share a name the object wins.
func NewSymbolTable(enums []ir.EnumDef, objects []ir.ObjectDef) SymbolTable {
	refs := make(map[string]ir.TypeRef, len(enums)+len(objects))
	for _, e := range enums {
		refs[e.Name] = ir.EnumRef{Name: e.Name}
	}
	for _, o := range objects {
		refs[o.Name] = ir.ObjectRef{Name: o.Name}
	}
	return SymbolTable{refs: refs}
}

// Lookup returns the TypeRef declared under name, if any.
func (t SymbolTable) Lookup(name string) (ir.TypeRef, bool) {
	ref, ok := t.refs[name]
	return ref, ok
}

// Len returns the number of declared names.
func (t SymbolTable) Len() int {
	return len(t.refs)
}
