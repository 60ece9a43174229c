package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGo(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"string", "white", String("white")},
		{"bool", true, Bool(true)},
		{"int", 42, Int(42)},
		{"int64", int64(42), Int(42)},
		{"float", 1.5, Float(1.5)},
		{"array", []any{"a", 1}, Array{String("a"), Int(1)}},
		{
			"object",
			map[string]any{"label": "Ok then", "color": "blue"},
			Object{"label": String("Ok then"), "color": String("blue")},
		},
		{
			"nested",
			map[string]any{"items": []any{map[string]any{"n": 1}}},
			Object{"items": Array{Object{"n": Int(1)}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromGoUnsupported(t *testing.T) {
	_, err := FromGo(struct{}{})
	assert.Error(t, err)

	_, err = FromGo(map[int]any{1: "x"})
	assert.Error(t, err)
}

func TestObjectSortedKeysRFC8785(t *testing.T) {
	obj := Object{
		"€": Null{}, // Euro sign U+20AC
		"é": Null{}, // e-acute U+00E9
		"a": Null{},
		"Z": Null{},
	}
	assert.Equal(t, []string{"Z", "a", "é", "€"}, obj.SortedKeys())
}

func TestObjectSortedKeysSurrogates(t *testing.T) {
	// U+1D306 encodes as the surrogate pair D834 DF06 in UTF-16. The
	// lead surrogate D834 sorts before the single code unit FB33, while
	// UTF-8 byte order puts U+FB33 first. RFC 8785 requires UTF-16 order.
	obj := Object{
		"\U0001d306": Null{},
		"דּ":          Null{},
	}
	assert.Equal(t, []string{"\U0001d306", "דּ"}, obj.SortedKeys())
}

func TestObjectMarshalDeterministic(t *testing.T) {
	obj := Object{"b": Int(2), "a": Int(1), "c": Bool(false)}
	first, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":false}`, string(first))

	for i := 0; i < 10; i++ {
		again, err := json.Marshal(obj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarshalValueKinds(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", Null{}, "null"},
		{"string", String("x"), `"x"`},
		{"int", Int(-7), "-7"},
		{"float", Float(1.5), "1.5"},
		{"bool", Bool(true), "true"},
		{"array", Array{Int(1), String("a")}, `[1,"a"]`},
		{"object", Object{"k": Null{}}, `{"k":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalValue(tt.val)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}
