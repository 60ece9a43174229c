package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing an opaque structured default
// value carried through from the manifest. Only Null, String, Int, Float,
// Bool, Array, and Object implement it.
//
// Values are never validated against the declared TypeRef in the
// front-end; they round-trip exactly as authored.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an explicit null in the manifest. A nil Value means the
// default was absent entirely; Null means it was written as null.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string value.
type String string

func (String) value() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating-point value. The FML type system has no
// float type, but defaults are opaque and may carry one.
type Float float64

func (Float) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Array represents a sequence of values.
type Array []Value

func (Array) value() {}

// Object represents a mapping of string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code
// units). Note Go's sort.Strings compares UTF-8 bytes, which produces a
// different order for strings outside the ASCII range.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785. utf16.Encode is used so surrogate pairs compare correctly.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// MarshalJSON implements json.Marshaler for Object with RFC 8785 key
// ordering, so plain json.Marshal of IR structs is already deterministic.
// This is NOT canonical serialization - use MarshalCanonical for hashing.
func (obj Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Array.
func (arr Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalValue(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalValue marshals a Value to JSON bytes using type-switch dispatch.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Float:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case Array:
		return val.MarshalJSON()
	case Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// FromGo converts a decoded YAML/JSON value (nil, string, bool, int,
// int64, uint64, float64, []any, map[string]any) into a Value. Unhandled
// types return an error rather than being coerced.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float64:
		return Float(val), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}
