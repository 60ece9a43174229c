package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON. This is the ONLY
// serialization that may feed content-addressed hashing.
//
// Differences from standard json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//
// Floats are serialized with encoding/json's shortest representation,
// which matches the RFC's ES6 formatting for the values that occur in
// manifests.
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case Null:
		return []byte("null"), nil
	case String:
		return marshalCanonicalString(string(val))
	case Int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case Float:
		return json.Marshal(float64(val))
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Array:
		return marshalCanonicalArray(val)
	case Object:
		return marshalCanonicalObject(val)
	case TypeRef:
		return marshalCanonical(typeRefMap(val))
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case float64:
		return json.Marshal(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			elemBytes, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(elemBytes)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		return marshalCanonicalAnyMap(val, keys)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalAnyMap marshals a plain map with RFC 8785 key ordering.
func marshalCanonicalAnyMap(m map[string]any, keys []string) ([]byte, error) {
	sortKeysRFC8785(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(m[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalArray marshals an Array to canonical JSON.
func marshalCanonicalArray(arr Array) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalCanonicalObject marshals an Object to canonical JSON with
// RFC 8785 key ordering.
func marshalCanonicalObject(obj Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortKeysRFC8785 sorts keys in place by UTF-16 code unit order.
func sortKeysRFC8785(keys []string) {
	slices.SortFunc(keys, compareKeysRFC8785)
}

// marshalCanonicalString produces a canonical JSON string with NFC
// normalization. Per RFC 8785: no HTML escaping, U+2028 and U+2029 are
// NOT escaped, only control characters, backslash, and quote are.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder still escapes U+2028/U+2029 for JavaScript
	// compatibility; RFC 8785 forbids that.
	result = unescapeU2028U2029(result)

	return result, nil
}

// unescapeU2028U2029 converts   and   escape sequences to the
// literal characters per RFC 8785. A sequence preceded by an odd number
// of backslashes is an escaped backslash followed by literal "u2028"
// text, not a line-separator escape, and must stay as-is.
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	result := make([]byte, 0, len(data))
	backslashes := 0
	i := 0
	for i < len(data) {
		c := data[i]
		if c == '\\' && backslashes%2 == 0 && i+6 <= len(data) &&
			data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				result = append(result, " "...)
			} else {
				result = append(result, " "...)
			}
			backslashes = 0
			i += 6
			continue
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		result = append(result, c)
		i++
	}
	return result
}

// CanonicalJSON serializes the manifest to RFC 8785 canonical JSON. Two
// structurally identical manifests always produce byte-identical output.
func (m *FeatureManifest) CanonicalJSON() ([]byte, error) {
	return MarshalCanonical(m.canonicalMap())
}

func (m *FeatureManifest) canonicalMap() map[string]any {
	enums := make([]any, len(m.EnumDefs))
	for i, e := range m.EnumDefs {
		enums[i] = e.canonicalMap()
	}
	objs := make([]any, len(m.ObjDefs))
	for i, o := range m.ObjDefs {
		objs[i] = o.canonicalMap()
	}
	features := make([]any, len(m.FeatureDefs))
	for i, f := range m.FeatureDefs {
		features[i] = f.canonicalMap()
	}
	hints := make(map[string]any, len(m.Hints))
	for k, v := range m.Hints {
		hints[k] = v
	}
	return map[string]any{
		"enum_defs":    enums,
		"obj_defs":     objs,
		"feature_defs": features,
		"hints":        hints,
	}
}

func (e EnumDef) canonicalMap() map[string]any {
	variants := make([]any, len(e.Variants))
	for i, v := range e.Variants {
		variants[i] = map[string]any{"name": v.Name, "doc": v.Doc}
	}
	return map[string]any{"name": e.Name, "doc": e.Doc, "variants": variants}
}

func (o ObjectDef) canonicalMap() map[string]any {
	props := make([]any, len(o.Props))
	for i, p := range o.Props {
		props[i] = p.canonicalMap()
	}
	out := map[string]any{"name": o.Name, "doc": o.Doc, "props": props}
	if o.Failable {
		out["failable"] = true
	}
	return out
}

func (f FeatureDef) canonicalMap() map[string]any {
	props := make([]any, len(f.Props))
	for i, p := range f.Props {
		props[i] = p.canonicalMap()
	}
	out := map[string]any{"name": f.Name, "doc": f.Doc, "props": props}
	if f.Default != nil {
		out["default"] = f.Default
	}
	return out
}

func (p PropDef) canonicalMap() map[string]any {
	out := map[string]any{"name": p.Name, "doc": p.Doc, "type": p.Typ}
	if p.Default != nil {
		out["default"] = p.Default
	}
	if p.Required {
		out["required"] = true
	}
	return out
}
