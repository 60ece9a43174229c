package typeexpr

import (
	"fmt"

	"github.com/roach88/fml/internal/ir"
)

// Built-in constructor names.
const (
	ConstructorString      = "String"
	ConstructorInt         = "Int"
	ConstructorBoolean     = "Boolean"
	ConstructorBundleText  = "BundleText"
	ConstructorBundleImage = "BundleImage"
	ConstructorEnum        = "Enum"
	ConstructorObject      = "Object"
	ConstructorList        = "List"
	ConstructorOption      = "Option"
	ConstructorMap         = "Map"
)

// Resolve interprets a parsed type expression into an ir.TypeRef. It is
// pure and total over well-formed input; ill-formed input returns a typed
// *Error.
//
// Primitive constructors ignore any arguments, matching the FML grammar
// where primitives are always leaves. Map keys are discriminated on the
// resolved TypeRef variant, not on the raw key text, so whitespace and
// formatting variants of Enum<...> keys all resolve.
func Resolve(expr *Expr) (ir.TypeRef, error) {
	switch expr.Name {
	case ConstructorString:
		return ir.StringRef{}, nil
	case ConstructorInt:
		return ir.IntRef{}, nil
	case ConstructorBoolean:
		return ir.BooleanRef{}, nil

	case ConstructorBundleText:
		name, err := argName(expr)
		if err != nil {
			return nil, err
		}
		return ir.BundleTextRef{Name: name}, nil
	case ConstructorBundleImage:
		name, err := argName(expr)
		if err != nil {
			return nil, err
		}
		return ir.BundleImageRef{Name: name}, nil
	case ConstructorEnum:
		name, err := argName(expr)
		if err != nil {
			return nil, err
		}
		return ir.EnumRef{Name: name}, nil
	case ConstructorObject:
		name, err := argName(expr)
		if err != nil {
			return nil, err
		}
		return ir.ObjectRef{Name: name}, nil

	case ConstructorList:
		item, err := argType(expr)
		if err != nil {
			return nil, err
		}
		return ir.ListRef{Item: item}, nil
	case ConstructorOption:
		item, err := argType(expr)
		if err != nil {
			return nil, err
		}
		return ir.OptionRef{Item: item}, nil

	case ConstructorMap:
		return resolveMap(expr)

	default:
		return nil, &Error{
			Code:    CodeTypeParsing,
			Expr:    expr.Name,
			Message: fmt.Sprintf("%s is not a recognized FML type", expr.Name),
		}
	}
}

// ResolveString parses and resolves a type expression in one step.
func ResolveString(input string) (ir.TypeRef, error) {
	expr, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Resolve(expr)
}

// resolveMap handles Map<K, V>. The key expression is resolved first and
// the result discriminated on its variant: an enum key produces an
// EnumMap, a String key a StringMap, anything else is unsupported.
func resolveMap(expr *Expr) (ir.TypeRef, error) {
	if len(expr.Args) != 2 {
		return nil, newMalformed(expr.String(), "Map takes exactly two type arguments")
	}

	key, err := Resolve(expr.Args[0])
	if err != nil {
		return nil, err
	}
	value, err := Resolve(expr.Args[1])
	if err != nil {
		return nil, err
	}

	switch key.(type) {
	case ir.EnumRef:
		return ir.EnumMapRef{Key: key, Value: value}, nil
	case ir.StringRef:
		return ir.StringMapRef{Value: value}, nil
	default:
		return nil, &Error{
			Code:    CodeUnsupportedMapKey,
			Expr:    expr.Args[0].String(),
			Message: fmt.Sprintf("%s is not a recognized FML Map key type", key),
		}
	}
}

// argName requires exactly one bare-identifier argument and returns it,
// for the name-carrying constructors (bundles, Enum, Object).
func argName(expr *Expr) (string, error) {
	arg, err := singleArg(expr)
	if err != nil {
		return "", err
	}
	if len(arg.Args) != 0 {
		return "", newMalformed(expr.String(), fmt.Sprintf("%s takes a name, not a type expression", expr.Name))
	}
	return arg.Name, nil
}

// argType requires exactly one argument and resolves it recursively, for
// the container constructors (List, Option).
func argType(expr *Expr) (ir.TypeRef, error) {
	arg, err := singleArg(expr)
	if err != nil {
		return nil, err
	}
	return Resolve(arg)
}

func singleArg(expr *Expr) (*Expr, error) {
	switch len(expr.Args) {
	case 0:
		return nil, newMalformed(expr.Name, fmt.Sprintf("%s requires a type argument", expr.Name))
	case 1:
		return expr.Args[0], nil
	default:
		return nil, newMalformed(expr.String(), fmt.Sprintf("%s takes exactly one type argument", expr.Name))
	}
}
