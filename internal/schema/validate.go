package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report schema keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required key is present and resolves every
// type tag. It must run once on the fully merged schema; it fills in the
// derived fields (Type, ReturnType, EnumValue.Int). The first problem found
// is returned as a SchemaError.
func (s *Schema) Validate() error {
	classes := s.ClassNames()

	enums := make(map[string]bool, len(s.Enums))
	// enums that declare an UNSET member
	unsetEnums := make(map[string]bool, len(s.Enums))
	for i := range s.Enums {
		e := &s.Enums[i]
		if err := validateEnum(e); err != nil {
			return err
		}
		subject := fmt.Sprintf("enum %q", e.Name)
		if enums[e.Name] {
			return NewError(subject, "enum is declared more than once")
		}
		if classes[e.Name] {
			return NewError(subject, "name is also used by a class")
		}
		enums[e.Name] = true
		for _, v := range e.Values {
			if v.Name == EnumUnsetMember {
				unsetEnums[e.Name] = true
			}
		}
	}

	for i := range s.Constants {
		if err := validateConstant(&s.Constants[i]); err != nil {
			return err
		}
	}

	for i := range s.Classes {
		if err := validateClass(&s.Classes[i], enums, unsetEnums, classes); err != nil {
			return err
		}
	}

	return nil
}

func validateEnum(e *EnumDef) error {
	subject := fmt.Sprintf("enum %q", e.Name)
	if err := validate.Struct(e); err != nil {
		return fromValidator(subject, err)
	}

	names := make(map[string]bool, len(e.Values))
	values := make(map[int64]string, len(e.Values))
	for i := range e.Values {
		v := &e.Values[i]
		if !v.Value.IsInt() {
			return NewError(subject, "value of member %q must be an integer, got %q", v.Name, v.Value.Text)
		}
		n, err := strconv.ParseInt(v.Value.Text, 0, 64)
		if err != nil {
			return NewError(subject, "value of member %q is out of range: %s", v.Name, v.Value.Text)
		}
		if names[v.Name] {
			return NewError(subject, "member %q is declared more than once", v.Name)
		}
		if other, dup := values[n]; dup {
			return NewError(subject, "members %q and %q share the value %d", other, v.Name, n)
		}
		names[v.Name] = true
		values[n] = v.Name
		v.Int = n
	}
	return nil
}

func validateConstant(c *ConstantDef) error {
	subject := fmt.Sprintf("constant %q", c.Name)
	if err := validate.Struct(c); err != nil {
		return fromValidator(subject, err)
	}

	t, err := ParseType(c.TypeTag, nil, nil)
	if err != nil {
		return NewError(subject, "%s", err.Error())
	}
	switch t.Kind {
	case KindInt, KindLong:
		if !c.Value.IsInt() {
			return NewError(subject, "value %q is not an integer", c.Value.Text)
		}
	case KindFloat:
		if c.Value.Tag != "!!float" && c.Value.Tag != "!!int" {
			return NewError(subject, "value %q is not a number", c.Value.Text)
		}
	case KindBool:
		if _, err := c.Value.Bool(); err != nil {
			return NewError(subject, "%s", err.Error())
		}
	case KindString:
	default:
		return NewError(subject, "constants must be float, str, int, long or bool, got %q", c.TypeTag)
	}
	c.Type = t
	return nil
}

func validateClass(c *ClassDef, enums, unsetEnums, classes map[string]bool) error {
	subject := classSubject(c.Name)
	if err := validate.Struct(c); err != nil {
		return fromValidator(subject, err)
	}

	if c.Superclass != "" && c.Superclass != RootClass {
		if c.Superclass == c.Name {
			return NewError(subject, "class cannot be its own superclass")
		}
		if !classes[c.Superclass] {
			return NewError(subject, "superclass %q is not declared", c.Superclass)
		}
	}
	for _, sc := range c.Superclasses {
		if sc == c.Name || sc == RootClass || !classes[sc] {
			return NewError(subject, "invalid capability superclass %q", sc)
		}
	}

	seen := make(map[string]bool, len(c.Items))
	for i := range c.Items {
		attr := &c.Items[i]
		attrSubject := memberSubject(c.Name, "attribute", attr.Name)
		if seen[attr.Name] {
			return NewError(attrSubject, "attribute is declared more than once")
		}
		seen[attr.Name] = true

		t, err := ParseType(attr.TypeTag, enums, classes)
		if err != nil {
			return NewError(attrSubject, "%s", err.Error())
		}
		attr.Type = t
		if err := checkEnumKeyword(attrSubject, t, attr.Default, unsetEnums); err != nil {
			return err
		}

		if t.Kind == KindBool {
			if !attr.HasDefault() {
				return errors.WithHint(
					NewError(attrSubject, "bool attribute has no default"),
					"bool has no unset value; add 'default: False' or 'default: True'")
			}
			if err := checkBoolDefault(attrSubject, attr.Default); err != nil {
				return err
			}
		}
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		methodSubject := memberSubject(c.Name, "method", m.Name)
		if m.ReturnTypeTag != "" {
			t, err := ParseType(m.ReturnTypeTag, enums, classes)
			if err != nil {
				return NewError(methodSubject, "return type: %s", err.Error())
			}
			m.ReturnType = &t
		}
		for j := range m.Params {
			p := &m.Params[j]
			t, err := ParseType(p.TypeTag, enums, classes)
			if err != nil {
				return NewError(methodSubject, "param %q: %s", p.Name, err.Error())
			}
			p.Type = t
			if err := checkEnumKeyword(methodSubject, t, p.Default, unsetEnums); err != nil {
				return err
			}
			if t.Kind == KindBool && p.Default != nil {
				if err := checkBoolDefault(methodSubject, p.Default); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func checkBoolDefault(subject string, lit *Literal) error {
	if lit.IsKeyword() {
		return NewError(subject, "bool has no %q value", lit.Text)
	}
	if _, err := lit.Bool(); err != nil {
		return NewError(subject, "%s", err.Error())
	}
	return nil
}

// checkEnumKeyword rejects a default keyword on an enum that has no member
// to stand for it
func checkEnumKeyword(subject string, t TypeDescriptor, lit *Literal, unsetEnums map[string]bool) error {
	if !t.IsEnum() || !lit.IsKeyword() || unsetEnums[t.Target] {
		return nil
	}
	return errors.WithHintf(
		NewError(subject, "default %q needs enum %q to declare a member %s", lit.Text, t.Target, EnumUnsetMember),
		"add '- name: %s' to the values of %s or give an explicit default", EnumUnsetMember, t.Target)
}

// Bool parses a boolean literal such as True or false
func (l *Literal) Bool() (bool, error) {
	if l == nil || l.Tag != "!!bool" {
		text := ""
		if l != nil {
			text = l.Text
		}
		return false, errors.Newf("%q is not a boolean", text)
	}
	return strconv.ParseBool(strings.ToLower(l.Text))
}

// fromValidator turns struct validation failures into a SchemaError that
// names the missing keys
func fromValidator(subject string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrapf(err, "validating %s", subject)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldPath(fe)+": "+describeTag(fe))
	}
	return NewError(subject, "%s", strings.Join(msgs, "; "))
}

// fieldPath drops the leading struct name from the validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required key is missing"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
