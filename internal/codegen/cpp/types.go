package cpp

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/schema"
)

// C++ spellings of the schema types
const (
	typeFloat  = "float_t"
	typeString = "std::string"
	typeInt    = "int"
	typeLong   = "long"
	typeBool   = "bool"
	typeVec2   = "Vec2"
	typeVec3   = "Vec3"
	typeIVec3  = "IVec3"
	typeVector = "std::vector"
	typeShared = "std::shared_ptr"
)

var scalarTypes = map[schema.Kind]TargetType{
	schema.KindFloat:  {Spelling: typeFloat, Unset: "FLT_UNSET"},
	schema.KindString: {Spelling: typeString, ByRef: true, Unset: "STR_UNSET"},
	schema.KindInt:    {Spelling: typeInt, Unset: "INT_UNSET"},
	schema.KindLong:   {Spelling: typeLong, Unset: "LONG_UNSET"},
	schema.KindBool:   {Spelling: typeBool},
	schema.KindVec2:   {Spelling: typeVec2, ByRef: true, Unset: "VEC2_UNSET"},
	schema.KindVec3:   {Spelling: typeVec3, ByRef: true, Unset: "VEC3_UNSET"},
	schema.KindIVec3:  {Spelling: typeIVec3, ByRef: true, Unset: "IVEC3_UNSET"},
}

// TargetType is the C++ representation of a schema type
type TargetType struct {
	// Spelling is the storage type, e.g. std::vector<std::shared_ptr<Species>>
	Spelling string
	// ByRef marks value types passed by const reference
	ByRef bool
	// Pointer marks shared_ptr types, passed by value without const
	Pointer bool
	// Unset is the sentinel that marks "no value"; empty for bool, which
	// has none. Lists use an empty-container construction.
	Unset string
}

// Resolve maps a schema type to its C++ representation
func Resolve(t schema.TypeDescriptor) TargetType {
	if st, ok := scalarTypes[t.Kind]; ok {
		return st
	}

	switch t.Kind {
	case schema.KindList:
		var inner TargetType
		if t.Inner != nil {
			inner = Resolve(*t.Inner)
		}
		spelling := typeVector + "<" + inner.Spelling + ">"
		return TargetType{Spelling: spelling, Unset: spelling + "()"}
	case schema.KindReference:
		return TargetType{Spelling: typeShared + "<" + t.Target + ">", Pointer: true, Unset: "nullptr"}
	case schema.KindEnum:
		return TargetType{Spelling: t.Target, Unset: t.Target + "::" + schema.EnumUnsetMember}
	}
	return TargetType{Spelling: "void"}
}

// ParamType returns the type as written in a parameter list: const
// reference for string and vector shapes, const value for the other value
// shapes and plain value for pointers
func ParamType(t schema.TypeDescriptor) string {
	tt := Resolve(t)
	switch {
	case tt.Pointer:
		return tt.Spelling
	case tt.ByRef:
		return "const " + tt.Spelling + "&"
	default:
		return "const " + tt.Spelling
	}
}

// ReturnType returns the type returned by a getter
func ReturnType(t schema.TypeDescriptor) string {
	tt := Resolve(t)
	if tt.ByRef {
		return "const " + tt.Spelling + "&"
	}
	return tt.Spelling
}

// DefaultValue renders the default argument for a declared default. It
// reports false when the member has no default at all. The keywords unset
// and empty select the type's sentinel.
func DefaultValue(t schema.TypeDescriptor, lit *schema.Literal) (string, bool, error) {
	if lit == nil {
		return "", false, nil
	}

	tt := Resolve(t)
	if lit.IsKeyword() {
		if tt.Unset == "" {
			return "", false, errors.Newf("type %s has no %q value", t.String(), lit.Text)
		}
		return tt.Unset, true, nil
	}

	switch {
	case t.Kind == schema.KindBool:
		b, err := lit.Bool()
		if err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	case t.Kind == schema.KindString:
		return quote(lit.Text), true, nil
	case !t.IsBase():
		// Enum.Member -> Enum::Member
		return strings.ReplaceAll(lit.Text, ".", "::"), true, nil
	}
	return lit.Text, true, nil
}

// quote renders s as a C++ string literal
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
