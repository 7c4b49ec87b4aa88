package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderscored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Box", "box"},
		{"SurfaceRegion", "surface_region"},
		{"ReleaseSite", "release_site"},
		{"IVec3", "i_vec3"},
		{"left_node", "left_node"},
		{"ABC", "a_b_c"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Underscored(tt.in))
		})
	}
}

func TestNamingConventions(t *testing.T) {
	assert.Equal(t, "SURFACE_REGION", UpperUnderscored("SurfaceRegion"))
	assert.Equal(t, "API_GEN_SURFACE_REGION_H", GenHeaderGuard("SurfaceRegion"))
	assert.Equal(t, "API_SURFACE_REGION_H", APIHeaderGuard("SurfaceRegion"))
	assert.Equal(t, "gen_surface_region.cpp", GenFileName("SurfaceRegion", "cpp"))
	assert.Equal(t, "surface_region.h", APIFileName("SurfaceRegion", "h"))
	assert.Equal(t, "GenSurfaceRegion", GenClassName("SurfaceRegion"))
	assert.Equal(t, "SURFACE_REGION_CTOR", CtorMacro("SurfaceRegion"))
	assert.Equal(t, "define_pybinding_SurfaceRegion", BindingFunc("SurfaceRegion"))
	assert.Equal(t, "NAME_CLASS_SURFACE_REGION", NameConstant("SurfaceRegion", true))
	assert.Equal(t, "NAME_LEFT_NODE", NameConstant("left_node", false))
}

func TestIncludePath(t *testing.T) {
	assert.Equal(t, "../api/box.h", includePath("../api", "box.h"))
	assert.Equal(t, "api/box.h", includePath("api/", "box.h"))
	assert.Equal(t, "box.h", includePath("", "box.h"))
}
