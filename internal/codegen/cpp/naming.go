package cpp

import (
	"path"
	"strings"
)

const (
	genFilePrefix    = "gen_"
	genGuardPrefix   = "API_GEN_"
	apiGuardPrefix   = "API_"
	guardSuffix      = "_H"
	ctorSuffix       = "_CTOR"
	genClassPrefix   = "Gen"
	namePrefix       = "NAME_"
	classNamePrefix  = "CLASS_"
	extHeader        = "h"
	extSource        = "cpp"
	constantsBase    = "gen_constants"
	constantsGuard   = "API_GEN_CONSTANTS"
	namesFile        = "gen_names.h"
	namesGuard       = "API_GEN_NAMES"
	commonHeaderBase = "common.h"
)

// Underscored converts a word-capitalized name to lowercase with an
// underscore inserted before every uppercase letter except the first
// character, e.g. SurfaceRegion -> surface_region.
func Underscored(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

// UpperUnderscored is Underscored in upper case, e.g. SURFACE_REGION
func UpperUnderscored(name string) string {
	return strings.ToUpper(Underscored(name))
}

// GenHeaderGuard returns the include guard of a generated class header
func GenHeaderGuard(class string) string {
	return genGuardPrefix + UpperUnderscored(class) + guardSuffix
}

// APIHeaderGuard returns the include guard of an extension stub
func APIHeaderGuard(class string) string {
	return apiGuardPrefix + UpperUnderscored(class) + guardSuffix
}

// GenFileName returns the generated file name of class with extension ext
func GenFileName(class, ext string) string {
	return genFilePrefix + Underscored(class) + "." + ext
}

// APIFileName returns the hand-edited file name of class with extension ext
func APIFileName(class, ext string) string {
	return Underscored(class) + "." + ext
}

// GenClassName returns the name of the generated base class
func GenClassName(class string) string {
	return genClassPrefix + class
}

// CtorMacro returns the name of the constructor macro used by the stub
func CtorMacro(class string) string {
	return UpperUnderscored(class) + ctorSuffix
}

// NameConstant returns the symbolic constant for a name table entry
func NameConstant(name string, isClass bool) string {
	if isClass {
		return namePrefix + classNamePrefix + UpperUnderscored(name)
	}
	return namePrefix + UpperUnderscored(name)
}

// BindingFunc returns the name of the per-class binding registration function
func BindingFunc(class string) string {
	return "define_pybinding_" + class
}

func includePath(dir, file string) string {
	if dir == "" {
		return file
	}
	return path.Join(dir, file)
}
