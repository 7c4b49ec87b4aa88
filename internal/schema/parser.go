package schema

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ParseSchema decodes a single YAML schema document. Class order follows
// the order of the top-level keys.
func ParseSchema(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse schema YAML")
	}

	s := &Schema{
		Constants: []ConstantDef{},
		Enums:     []EnumDef{},
		Classes:   []ClassDef{},
	}

	// Empty document
	if root.Kind == 0 || len(root.Content) == 0 {
		return s, nil
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, NewError("", "top level must be a mapping (line %d)", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		value := doc.Content[i+1]

		switch key {
		case KeyConstants:
			var constants []ConstantDef
			if err := value.Decode(&constants); err != nil {
				return nil, errors.Wrapf(err, "failed to decode %s", KeyConstants)
			}
			s.Constants = append(s.Constants, constants...)

		case KeyEnums:
			var enums []EnumDef
			if err := value.Decode(&enums); err != nil {
				return nil, errors.Wrapf(err, "failed to decode %s", KeyEnums)
			}
			s.Enums = append(s.Enums, enums...)

		default:
			if _, exists := s.Class(key); exists {
				return nil, NewError(classSubject(key), "class is declared more than once")
			}
			class, err := parseClass(key, value)
			if err != nil {
				return nil, err
			}
			s.Classes = append(s.Classes, class)
		}
	}

	return s, nil
}

func parseClass(name string, value *yaml.Node) (ClassDef, error) {
	class := ClassDef{}

	// A class with no body at all is allowed
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		class.Name = name
		return class, nil
	}

	if value.Kind != yaml.MappingNode {
		return class, NewError(classSubject(name), "class body must be a mapping (line %d)", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		switch key.Value {
		case KeySuperclass, KeySuperclasses, KeyItems, KeyMethods:
		default:
			return class, errors.WithHintf(
				NewError(classSubject(name), "unknown key %q (line %d)", key.Value, key.Line),
				"a class body may contain %s, %s, %s and %s", KeySuperclass, KeySuperclasses, KeyItems, KeyMethods)
		}
	}

	if err := value.Decode(&class); err != nil {
		return class, errors.Wrapf(err, "failed to decode class %q", name)
	}
	class.Name = name
	return class, nil
}

// Merge appends the definitions of other to s. Declaring the same class in
// two documents is an error.
func (s *Schema) Merge(other *Schema) error {
	for _, c := range other.Classes {
		if _, exists := s.Class(c.Name); exists {
			return NewError(classSubject(c.Name), "class is declared more than once")
		}
		s.Classes = append(s.Classes, c)
	}
	s.Constants = append(s.Constants, other.Constants...)
	s.Enums = append(s.Enums, other.Enums...)
	return nil
}
