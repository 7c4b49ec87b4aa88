package model

import (
	"fmt"

	"github.com/mcell/classgen/internal/schema"
)

// Flatten resolves one level of inheritance for class. The chaining
// superclass (unless it is the root) contributes its own effective
// attributes and methods, so that the copies line up with its constructor.
// Each capability superclass contributes its declared attributes and
// methods. Duplicates are not detected.
//
// Every candidate superclass must itself derive directly from the root;
// deeper chains are a SchemaError.
func Flatten(s *schema.Schema, class *schema.ClassDef) (*EffectiveClass, error) {
	res := &EffectiveClass{
		Name:         class.Name,
		Superclass:   class.Superclass,
		Capabilities: append([]string(nil), class.Superclasses...),
		Attributes:   append([]schema.AttributeDef{}, class.Items...),
		Methods:      append([]schema.MethodDef{}, class.Methods...),
	}

	if class.Superclass != "" && class.Superclass != schema.RootClass {
		super, err := candidate(s, class, class.Superclass)
		if err != nil {
			return nil, err
		}
		// The chaining superclass is constructed with its full effective list
		superEffective, err := Flatten(s, super)
		if err != nil {
			return nil, err
		}
		res.inherit(superEffective.Attributes, superEffective.Methods)
		res.chained = append([]schema.AttributeDef(nil), res.Attributes[len(class.Items):]...)
	}

	for _, name := range class.Superclasses {
		capability, err := candidate(s, class, name)
		if err != nil {
			return nil, err
		}
		res.inherit(capability.Items, capability.Methods)
	}

	return res, nil
}

func candidate(s *schema.Schema, class *schema.ClassDef, name string) (*schema.ClassDef, error) {
	subject := fmt.Sprintf("class %q", class.Name)
	super, ok := s.Class(name)
	if !ok {
		return nil, schema.NewError(subject, "superclass %q is not declared", name)
	}
	if super.Superclass != "" && super.Superclass != schema.RootClass {
		return nil, schema.NewError(subject,
			"only one level of inheritance is supported: superclass %q derives from %q",
			super.Name, super.Superclass)
	}
	return super, nil
}

func (c *EffectiveClass) inherit(attrs []schema.AttributeDef, methods []schema.MethodDef) {
	for _, a := range attrs {
		a.Inherited = true
		c.Attributes = append(c.Attributes, a)
	}
	for _, m := range methods {
		m.Inherited = true
		m.Params = append([]schema.ParamDef(nil), m.Params...)
		c.Methods = append(c.Methods, m)
	}
}

// Lint returns non-fatal observations about an effective class that are
// worth reporting to the schema author.
func Lint(c *EffectiveClass) []string {
	var warnings []string

	if c.ChainsConstructor() && len(c.Capabilities) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"class %q combines chaining superclass %q with capability superclasses %v",
			c.Name, c.Superclass, c.Capabilities))
	}

	// C++ default arguments must be trailing
	seenDefault := ""
	for _, a := range c.Attributes {
		if a.HasDefault() {
			if seenDefault == "" {
				seenDefault = a.Name
			}
			continue
		}
		if seenDefault != "" && c.HasSuperclass() {
			warnings = append(warnings, fmt.Sprintf(
				"class %q: required attribute %q follows defaulted attribute %q in the constructor",
				c.Name, a.Name, seenDefault))
			break
		}
	}

	return warnings
}
