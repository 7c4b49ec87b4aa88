package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	enums := map[string]bool{"Orientation": true}
	classes := map[string]bool{"Species": true}

	tests := []struct {
		tag      string
		kind     Kind
		base     bool
		compound string
	}{
		{"float", KindFloat, true, ""},
		{"str", KindString, true, ""},
		{"int", KindInt, true, ""},
		{"long", KindLong, true, ""},
		{"bool", KindBool, true, ""},
		{"Vec2", KindVec2, true, ""},
		{"Vec3", KindVec3, true, ""},
		{"IVec3", KindIVec3, true, ""},
		{"List[int]", KindList, true, ""},
		{"List[List[float]]", KindList, true, ""},
		{"Species*", KindReference, false, "Species"},
		{"List[Species*]", KindList, false, "Species"},
		{"Orientation", KindEnum, false, "Orientation"},
		{"List[Orientation]", KindList, false, "Orientation"},
		{"BaseDataClass*", KindReference, false, "BaseDataClass"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseType(tt.tag, enums, classes)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.base, got.IsBase())
			assert.Equal(t, tt.tag, got.String())

			name, ok := got.CompoundName()
			assert.Equal(t, tt.compound != "", ok)
			assert.Equal(t, tt.compound, name)
		})
	}
}

func TestParseType_Unrecognized(t *testing.T) {
	// Test: bare names that are not enums, and references to unknown classes, are rejected
	for _, tag := range []string{"double", "Species", "Unknown*", "List[Unknown*]", "List[]"} {
		t.Run(tag, func(t *testing.T) {
			_, err := ParseType(tag, map[string]bool{}, map[string]bool{"Species": true})
			assert.Error(t, err)
		})
	}
}

func TestTypeDescriptor_Element(t *testing.T) {
	inner := TypeDescriptor{Kind: KindReference, Target: "Species"}
	list := TypeDescriptor{Kind: KindList, Inner: &TypeDescriptor{Kind: KindList, Inner: &inner}}

	assert.Equal(t, inner, list.Element())
	assert.True(t, list.IsList())
	assert.False(t, list.IsReference())
	assert.True(t, list.Element().IsReference())
	assert.False(t, list.IsEnum())

	enum := TypeDescriptor{Kind: KindEnum, Target: "Orientation"}
	assert.True(t, enum.IsEnum())
	assert.False(t, TypeDescriptor{Kind: KindList, Inner: &enum}.IsEnum())
}

func TestLiteral_IsKeyword(t *testing.T) {
	assert.True(t, (&Literal{Text: "unset", Tag: "!!str"}).IsKeyword())
	assert.True(t, (&Literal{Text: "empty", Tag: "!!str"}).IsKeyword())
	assert.False(t, (&Literal{Text: "1.0", Tag: "!!float"}).IsKeyword())
	assert.False(t, (*Literal)(nil).IsKeyword())
}
