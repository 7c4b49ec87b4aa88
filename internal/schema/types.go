package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Kind is the tag of a TypeDescriptor
type Kind int

const (
	KindInvalid Kind = iota
	KindFloat
	KindString
	KindInt
	KindLong
	KindBool
	KindVec2
	KindVec3
	KindIVec3
	KindList
	KindReference
	KindEnum
)

// Schema type tags
const (
	TagFloat = "float"
	TagStr   = "str"
	TagInt   = "int"
	TagLong  = "long"
	TagBool  = "bool"
	TagVec2  = "Vec2"
	TagVec3  = "Vec3"
	TagIVec3 = "IVec3"
	TagList  = "List"
)

var scalarTags = map[string]Kind{
	TagFloat: KindFloat,
	TagStr:   KindString,
	TagInt:   KindInt,
	TagLong:  KindLong,
	TagBool:  KindBool,
	TagVec2:  KindVec2,
	TagVec3:  KindVec3,
	TagIVec3: KindIVec3,
}

// TypeDescriptor is the resolved form of a schema type tag
type TypeDescriptor struct {
	Kind Kind
	// Inner is the element type of a List.
	Inner *TypeDescriptor
	// Target is the class name of a Reference or the enum name of an Enum.
	Target string
}

// IsScalar reports whether t is one of the fixed value types
func (t TypeDescriptor) IsScalar() bool {
	return t.Kind >= KindFloat && t.Kind <= KindIVec3
}

// IsBase reports whether t is a scalar or a list whose element type is
// itself base. Enums and references are not base types.
func (t TypeDescriptor) IsBase() bool {
	if t.Kind == KindList {
		return t.Inner != nil && t.Inner.IsBase()
	}
	return t.IsScalar()
}

func (t TypeDescriptor) IsList() bool {
	return t.Kind == KindList
}

func (t TypeDescriptor) IsReference() bool {
	return t.Kind == KindReference
}

func (t TypeDescriptor) IsEnum() bool {
	return t.Kind == KindEnum
}

// Element returns the innermost non-list type
func (t TypeDescriptor) Element() TypeDescriptor {
	for t.Kind == KindList && t.Inner != nil {
		t = *t.Inner
	}
	return t
}

// CompoundName returns the class or enum name t refers to, looking through lists
func (t TypeDescriptor) CompoundName() (string, bool) {
	elem := t.Element()
	if elem.Kind == KindReference || elem.Kind == KindEnum {
		return elem.Target, true
	}
	return "", false
}

// String renders t back into schema tag form
func (t TypeDescriptor) String() string {
	switch t.Kind {
	case KindList:
		if t.Inner == nil {
			return TagList + "[]"
		}
		return TagList + "[" + t.Inner.String() + "]"
	case KindReference:
		return t.Target + "*"
	case KindEnum:
		return t.Target
	}
	for tag, kind := range scalarTags {
		if kind == t.Kind {
			return tag
		}
	}
	return "invalid"
}

// ParseType resolves a type tag. Bare names must be declared enums and
// reference targets must be declared classes (or the root class).
func ParseType(tag string, enums, classes map[string]bool) (TypeDescriptor, error) {
	tag = strings.TrimSpace(tag)
	if kind, ok := scalarTags[tag]; ok {
		return TypeDescriptor{Kind: kind}, nil
	}

	if strings.HasPrefix(tag, TagList+"[") && strings.HasSuffix(tag, "]") {
		inner, err := ParseType(tag[len(TagList)+1:len(tag)-1], enums, classes)
		if err != nil {
			return TypeDescriptor{}, err
		}
		return TypeDescriptor{Kind: KindList, Inner: &inner}, nil
	}

	if strings.HasSuffix(tag, "*") {
		target := strings.TrimSuffix(tag, "*")
		if target == RootClass || classes[target] {
			return TypeDescriptor{Kind: KindReference, Target: target}, nil
		}
		return TypeDescriptor{}, errors.Newf("reference to undeclared class %q", target)
	}

	if enums[tag] {
		return TypeDescriptor{Kind: KindEnum, Target: tag}, nil
	}

	return TypeDescriptor{}, errors.Newf("unrecognized type %q", tag)
}

// Literal keeps a default or constant value exactly as written in the schema
type Literal struct {
	Text string
	// Tag is the resolved YAML tag, e.g. "!!int", "!!float", "!!str", "!!bool".
	Tag string
}

// UnmarshalYAML implements yaml.Unmarshaler
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: expected a scalar value", n.Line)
	}
	l.Text = n.Value
	l.Tag = n.ShortTag()
	return nil
}

// IsKeyword reports whether the literal is one of the "no value" keywords
func (l *Literal) IsKeyword() bool {
	return l != nil && l.Tag == "!!str" && (l.Text == KeywordUnset || l.Text == KeywordEmpty)
}

// IsInt reports whether the literal was written as an integer
func (l *Literal) IsInt() bool {
	return l != nil && l.Tag == "!!int"
}
