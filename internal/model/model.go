// Package model flattens schema classes into emission-ready effective classes.
package model

import (
	"sort"

	"github.com/mcell/classgen/internal/schema"
)

// EffectiveClass is a class after inheritance flattening: its own
// attributes and methods followed by copies from its chaining superclass and
// capability superclasses, each copy tagged as inherited.
type EffectiveClass struct {
	Name string
	// Superclass is the chaining superclass as declared, possibly the root
	// class, or empty when the class has none.
	Superclass string
	// Capabilities are the copy-only superclasses.
	Capabilities []string

	Attributes []schema.AttributeDef
	Methods    []schema.MethodDef

	// chained is the effective attribute list of the chaining superclass,
	// i.e. the arguments of its constructor
	chained []schema.AttributeDef
}

// HasSuperclass reports whether the class declares any chaining superclass,
// the root class included
func (c *EffectiveClass) HasSuperclass() bool {
	return c.Superclass != ""
}

// ChainsConstructor reports whether the class delegates construction to a
// superclass other than the root
func (c *EffectiveClass) ChainsConstructor() bool {
	return c.Superclass != "" && c.Superclass != schema.RootClass
}

// OwnAttributes returns the attributes declared by the class itself
func (c *EffectiveClass) OwnAttributes() []schema.AttributeDef {
	return filterAttributes(c.Attributes, false)
}

// InheritedAttributes returns the attributes copied from superclasses
func (c *EffectiveClass) InheritedAttributes() []schema.AttributeDef {
	return filterAttributes(c.Attributes, true)
}

func filterAttributes(attrs []schema.AttributeDef, inherited bool) []schema.AttributeDef {
	res := []schema.AttributeDef{}
	for _, a := range attrs {
		if a.Inherited == inherited {
			res = append(res, a)
		}
	}
	return res
}

// ChainedAttributes returns the attributes forwarded to the chaining
// superclass constructor, in that constructor's parameter order
func (c *EffectiveClass) ChainedAttributes() []schema.AttributeDef {
	return append([]schema.AttributeDef{}, c.chained...)
}

// OwnMethods returns the methods declared by the class itself
func (c *EffectiveClass) OwnMethods() []schema.MethodDef {
	res := []schema.MethodDef{}
	for _, m := range c.Methods {
		if !m.Inherited {
			res = append(res, m)
		}
	}
	return res
}

// RequiredAttributes returns every effective attribute without a default
func (c *EffectiveClass) RequiredAttributes() []schema.AttributeDef {
	res := []schema.AttributeDef{}
	for _, a := range c.Attributes {
		if !a.HasDefault() {
			res = append(res, a)
		}
	}
	return res
}

// IsOverloaded reports whether more than one effective method has the given name
func (c *EffectiveClass) IsOverloaded(name string) bool {
	count := 0
	for _, m := range c.Methods {
		if m.Name == name {
			count++
		}
	}
	return count >= 2
}

// HasMethod reports whether an effective method with the given name exists
func (c *EffectiveClass) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// UsedClasses returns the sorted names of all classes referenced by
// attributes, return types and parameters. Names for which isEnum reports
// true are excluded.
func (c *EffectiveClass) UsedClasses(isEnum func(name string) bool) []string {
	set := map[string]bool{}
	add := func(t schema.TypeDescriptor) {
		if name, ok := t.CompoundName(); ok && !isEnum(name) {
			set[name] = true
		}
	}

	for _, a := range c.Attributes {
		add(a.Type)
	}
	for _, m := range c.Methods {
		if m.ReturnType != nil {
			add(*m.ReturnType)
		}
		for _, p := range m.Params {
			add(p.Type)
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
