package codegen

import (
	"testing"

	"github.com/mcell/classgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	// Test plan:
	// - Class names and member names are collected from the raw schema
	// - Both lists are sorted ignoring case
	// - Constants and enums are not part of the name table

	s, err := schema.ParseSchema([]byte(`
constants:
  - name: PI
    type: float
    value: 3.14
enums:
  - name: Orientation
    values:
      - name: UP
        value: 0
zone:
  superclass: BaseDataClass
Box:
  superclass: BaseDataClass
  items:
    - name: size
      type: float
      default: 1
    - name: Name
      type: str
  methods:
    - name: scale
      params:
        - name: factor
          type: float
Apple:
  items:
    - name: size
      type: float
`))
	require.NoError(t, err)

	ctx := NewContext(s)
	assert.Equal(t, []string{"Apple", "Box", "zone"}, ctx.ClassNames)
	assert.Equal(t, []string{"factor", "Name", "scale", "size"}, ctx.MemberNames)
	assert.True(t, ctx.IsEnum("Orientation"))
	assert.False(t, ctx.IsEnum("Box"))
	assert.Same(t, s, ctx.Schema)
}
