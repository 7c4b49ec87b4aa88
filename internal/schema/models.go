package schema

// RootClass is the universal root every data class ultimately derives from.
// It supplies the reserved "name" attribute.
const RootClass = "BaseDataClass"

// ReservedAttrName is the attribute already provided by RootClass. It never
// gets generated storage or accessors.
const ReservedAttrName = "name"

// Reserved top-level keys of a schema document
const (
	KeyConstants = "constants"
	KeyEnums     = "enums"
)

// Default keywords that mark an attribute as optional without giving it a value
const (
	KeywordUnset = "unset"
	KeywordEmpty = "empty"
)

// EnumUnsetMember is the member a default keyword selects on an enum-typed
// attribute or param
const EnumUnsetMember = "UNSET"

// Keys allowed in a class body
const (
	KeySuperclass   = "superclass"
	KeySuperclasses = "superclasses"
	KeyItems        = "items"
	KeyMethods      = "methods"
)

// Schema is the merged, in-memory form of all schema files
type Schema struct {
	Constants []ConstantDef
	Enums     []EnumDef
	Classes   []ClassDef
}

// ClassDef is one top-level class block. Its name is the mapping key.
type ClassDef struct {
	Name         string         `yaml:"-" validate:"required"`
	Superclass   string         `yaml:"superclass"`
	Superclasses []string       `yaml:"superclasses" validate:"dive,required"`
	Items        []AttributeDef `yaml:"items" validate:"dive"`
	Methods      []MethodDef    `yaml:"methods" validate:"dive"`
}

// AttributeDef is a data attribute ("item") of a class
type AttributeDef struct {
	Name    string   `yaml:"name" validate:"required"`
	TypeTag string   `yaml:"type" validate:"required"`
	Default *Literal `yaml:"default"`

	// Type is filled in by Validate.
	Type TypeDescriptor `yaml:"-"`
	// Inherited marks copies made by inheritance flattening.
	Inherited bool `yaml:"-"`
}

// HasDefault reports whether the attribute declares any default, keywords included
func (a AttributeDef) HasDefault() bool {
	return a.Default != nil
}

// MethodDef is a method declaration of a class
type MethodDef struct {
	Name          string     `yaml:"name" validate:"required"`
	ReturnTypeTag string     `yaml:"return_type"`
	Params        []ParamDef `yaml:"params" validate:"dive"`

	// ReturnType is nil for methods returning nothing. Filled in by Validate.
	ReturnType *TypeDescriptor `yaml:"-"`
	Inherited  bool            `yaml:"-"`
}

// ParamDef is a single method parameter
type ParamDef struct {
	Name    string   `yaml:"name" validate:"required"`
	TypeTag string   `yaml:"type" validate:"required"`
	Default *Literal `yaml:"default"`

	Type TypeDescriptor `yaml:"-"`
}

// EnumDef represents an enumeration with explicit integer values
type EnumDef struct {
	Name   string      `yaml:"name" validate:"required"`
	Values []EnumValue `yaml:"values" validate:"required,min=1,dive"`
}

// EnumValue is a single enum member
type EnumValue struct {
	Name  string   `yaml:"name" validate:"required"`
	Value *Literal `yaml:"value" validate:"required"`

	// Int is the parsed member value. Filled in by Validate.
	Int int64 `yaml:"-"`
}

// ConstantDef is a named global constant of a scalar type
type ConstantDef struct {
	Name    string   `yaml:"name" validate:"required"`
	TypeTag string   `yaml:"type" validate:"required"`
	Value   *Literal `yaml:"value" validate:"required"`

	Type TypeDescriptor `yaml:"-"`
}

// Class returns the class with the given name
func (s *Schema) Class(name string) (*ClassDef, bool) {
	for i := range s.Classes {
		if s.Classes[i].Name == name {
			return &s.Classes[i], true
		}
	}
	return nil, false
}

// EnumNames returns the set of declared enum names
func (s *Schema) EnumNames() map[string]bool {
	names := make(map[string]bool, len(s.Enums))
	for _, e := range s.Enums {
		names[e.Name] = true
	}
	return names
}

// ClassNames returns the set of declared class names
func (s *Schema) ClassNames() map[string]bool {
	names := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		names[c.Name] = true
	}
	return names
}
