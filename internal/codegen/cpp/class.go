package cpp

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/codegen/writer"
	"github.com/mcell/classgen/internal/model"
	"github.com/mcell/classgen/internal/schema"
)

const (
	ctorPostprocess = "postprocess_in_ctor"
	checkSemantics  = "check_semantics"
	classNameAttr   = "class_name"
	vecPtrToStr     = "vec_ptr_to_str"
	vecNonptrToStr  = "vec_nonptr_to_str"
	vecPtrEq        = "vec_ptr_eq"
	dumpMethod      = "dump"
)

// classHeader renders gen_<class>.h: the constructor macro and the Gen class
func (g *Generator) classHeader(ctx *codegen.Context, c *model.EffectiveClass) ([]byte, error) {
	w := writer.NewWriter(indent)
	g.preamble(w, true)

	guard := GenHeaderGuard(c.Name)
	guardOpen(w, guard)

	w.WriteLinef(`#include "%s"`, g.commonInclude())
	switch {
	case c.ChainsConstructor():
		w.WriteLinef(`#include "%s"`, g.apiInclude(c.Superclass))
	case c.HasSuperclass():
		w.WriteLinef(`#include "%s"`, g.apiInclude(schema.RootClass))
	}
	w.BlankLine()

	g.beginNamespaces(w)

	for _, name := range c.UsedClasses(ctx.IsEnum) {
		w.WriteLinef("class %s;", name)
	}
	w.BlankLine()

	if err := ctorMacro(w, c); err != nil {
		return nil, err
	}
	w.BlankLine()

	if err := genClass(w, c); err != nil {
		return nil, err
	}
	w.BlankLine()

	w.WriteLinef("class %s;", c.Name)
	w.WriteLinef("py::class_<%s> %s(py::module& m);", c.Name, BindingFunc(c.Name))
	w.BlankLine()

	g.endNamespaces(w)
	guardClose(w, guard)
	return w.Bytes(), nil
}

// ctorParams renders one constructor parameter per attribute, suffixed
// with an underscore
func ctorParams(attrs []schema.AttributeDef) ([]string, error) {
	params := make([]string, 0, len(attrs))
	for _, a := range attrs {
		p := ParamType(a.Type) + " " + a.Name + "_"
		def, ok, err := DefaultValue(a.Type, a.Default)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", a.Name)
		}
		if ok {
			p += " = " + def
		}
		params = append(params, p)
	}
	return params, nil
}

func forwardedArgs(attrs []schema.AttributeDef) string {
	args := make([]string, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a.Name+"_")
	}
	return strings.Join(args, ", ")
}

// ctorMacro renders <CLASS>_CTOR(), the constructor of the extension class.
// It takes every effective attribute, forwards the chained ones to the Gen
// class and assigns all of them before running the semantic check. Data
// classes also set their class name and run the post-construction hook.
func ctorMacro(w *writer.Writer, c *model.EffectiveClass) error {
	params, err := ctorParams(c.Attributes)
	if err != nil {
		return err
	}

	chain := ""
	if c.ChainsConstructor() {
		chain = fmt.Sprintf(" : %s(%s)", GenClassName(c.Name), forwardedArgs(c.ChainedAttributes()))
	}

	w.Continued(func() {
		w.WriteLinef("#define %s()", CtorMacro(c.Name))
		w.Indent()
		w.Indent()
		w.WriteLinef("%s(", c.Name)
		w.Indent()
		w.Indent()
		w.WriteList(params, ",")
		w.Dedent()
		w.Dedent()
		w.WriteLinef(")%s {", chain)
		w.Indent()
		if c.HasSuperclass() {
			w.WriteLinef(`%s = "%s";`, classNameAttr, c.Name)
		}
		for _, a := range c.Attributes {
			w.WriteLinef("%s = %s_;", a.Name, a.Name)
		}
		if c.HasSuperclass() {
			w.WriteLinef("%s();", ctorPostprocess)
		}
		w.WriteLinef("%s();", checkSemantics)
		w.Dedent()
	})
	w.WriteLine("}")
	w.Dedent()
	w.Dedent()
	return nil
}

func genClass(w *writer.Writer, c *model.EffectiveClass) error {
	genName := GenClassName(c.Name)
	if c.HasSuperclass() {
		w.WriteLinef("class %s: public %s {", genName, c.Superclass)
	} else {
		w.WriteLinef("class %s {", genName)
	}
	w.WriteLine("public:")
	w.Indent()

	if c.ChainsConstructor() {
		params, err := ctorParams(c.ChainedAttributes())
		if err != nil {
			return err
		}
		w.WriteLinef("%s(", genName)
		w.Indent()
		w.Indent()
		w.WriteList(params, ",")
		w.Dedent()
		w.Dedent()
		w.WriteLinef(") : %s(%s) {", c.Superclass, forwardedArgs(c.ChainedAttributes()))
		w.WriteLine("}")
	}

	if c.HasSuperclass() {
		w.WriteLinef("void %s() override {}", ctorPostprocess)
		w.WriteLinef("void %s() const override;", checkSemantics)
		w.WriteLine(`std::string to_str(const std::string ind="") const override;`)
		w.BlankLine()
		w.WriteLinef("bool __eq__(const %s& other) const;", genName)
		w.BlankLine()
	} else {
		w.WriteLinef("virtual ~%s() {}", genName)
		w.WriteLinef("virtual void %s() const;", checkSemantics)
		w.WriteLine(`virtual std::string to_str(const std::string ind="") const;`)
		if !c.HasMethod(dumpMethod) {
			w.WriteLinef("virtual void %s() const;", dumpMethod)
		}
		w.BlankLine()
	}

	w.WriteComment("--- attributes ---")
	for _, a := range c.OwnAttributes() {
		if a.Name == schema.ReservedAttrName {
			continue
		}
		writeAttribute(w, a)
		w.BlankLine()
	}

	w.WriteComment("--- methods ---")
	for _, m := range c.OwnMethods() {
		sig, err := methodSignature(m)
		if err != nil {
			return err
		}
		w.WriteLinef("virtual %s = 0;", sig)
	}

	w.Dedent()
	w.WriteLinef("}; // %s", genName)
	return nil
}

// writeAttribute renders the storage field and the virtual setter/getter pair
func writeAttribute(w *writer.Writer, a schema.AttributeDef) {
	tt := Resolve(a.Type)
	w.WriteLinef("%s %s;", tt.Spelling, a.Name)
	w.WriteBlock(fmt.Sprintf("virtual void set_%s(%s new_%s_) {", a.Name, ParamType(a.Type), a.Name), "}", func() {
		w.WriteLinef("%s = new_%s_;", a.Name, a.Name)
	})
	w.WriteBlock(fmt.Sprintf("virtual %s get_%s() const {", ReturnType(a.Type), a.Name), "}", func() {
		w.WriteLinef("return %s;", a.Name)
	})
}

func methodSignature(m schema.MethodDef) (string, error) {
	ret := "void"
	if m.ReturnType != nil {
		ret = Resolve(*m.ReturnType).Spelling
	}

	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		decl := ParamType(p.Type) + " " + p.Name
		def, ok, err := DefaultValue(p.Type, p.Default)
		if err != nil {
			return "", errors.Wrapf(err, "method %q, param %q", m.Name, p.Name)
		}
		if ok {
			decl += " = " + def
		}
		params = append(params, decl)
	}
	return fmt.Sprintf("%s %s(%s)", ret, m.Name, strings.Join(params, ", ")), nil
}

// classSource renders gen_<class>.cpp: the semantic check, equality,
// serialization and the binding registration
func (g *Generator) classSource(ctx *codegen.Context, c *model.EffectiveClass) ([]byte, error) {
	w := writer.NewWriter(indent)
	g.preamble(w, true)

	w.WriteLine("#include <sstream>")
	if ownsDump(c) {
		w.WriteLine("#include <iostream>")
	}
	w.WriteLine("#include <pybind11/stl.h>")
	w.WriteLinef(`#include "%s"`, GenFileName(c.Name, extHeader))
	w.WriteLinef(`#include "%s"`, g.apiInclude(c.Name))
	for _, name := range c.UsedClasses(ctx.IsEnum) {
		w.WriteLinef(`#include "%s"`, g.apiInclude(name))
	}
	w.BlankLine()

	g.beginNamespaces(w)

	writeCheckSemantics(w, c)
	w.BlankLine()
	if c.HasSuperclass() {
		writeEquality(w, c)
		w.BlankLine()
	}
	writeToStr(w, c)
	w.BlankLine()
	if ownsDump(c) {
		w.WriteBlock(fmt.Sprintf("void %s::%s() const {", GenClassName(c.Name), dumpMethod), "}", func() {
			w.WriteLine(`std::cout << to_str() << "\n";`)
		})
		w.BlankLine()
	}

	if err := writeBindings(w, c); err != nil {
		return nil, err
	}
	w.BlankLine()

	g.endNamespaces(w)
	return w.Bytes(), nil
}

// writeCheckSemantics checks every effective attribute declared without a default
func writeCheckSemantics(w *writer.Writer, c *model.EffectiveClass) {
	w.WriteBlock(fmt.Sprintf("void %s::%s() const {", GenClassName(c.Name), checkSemantics), "}", func() {
		for _, a := range c.RequiredAttributes() {
			w.WriteBlock(fmt.Sprintf("if (!is_set(%s)) {", a.Name), "}", func() {
				w.WriteLinef(`throw ValueError("Parameter '%s' must be set.");`, a.Name)
			})
		}
	})
}

func writeEquality(w *writer.Writer, c *model.EffectiveClass) {
	genName := GenClassName(c.Name)
	w.WriteBlock(fmt.Sprintf("bool %s::__eq__(const %s& other) const {", genName, genName), "}", func() {
		if len(c.Attributes) == 0 {
			w.WriteLine("return true;")
			return
		}
		w.WriteLine("return")
		w.Indent()
		for i, a := range c.Attributes {
			term := equalityTerm(a)
			if i != len(c.Attributes)-1 {
				term += " &&"
			} else {
				term += ";"
			}
			w.WriteLine(term)
		}
		w.Dedent()
	})
}

func equalityTerm(a schema.AttributeDef) string {
	n := a.Name
	switch {
	case a.Type.IsReference():
		return fmt.Sprintf(
			"((%s != nullptr) ? ((other.%s != nullptr) ? %s->__eq__(*other.%s) : false) : (other.%s == nullptr))",
			n, n, n, n, n)
	case a.Type.IsList() && a.Type.Element().IsReference():
		return fmt.Sprintf("%s(%s, other.%s)", vecPtrEq, n, n)
	default:
		return fmt.Sprintf("%s == other.%s", n, n)
	}
}

// ownsDump reports whether the Gen class itself defines dump. Data classes
// inherit it from the root class.
func ownsDump(c *model.EffectiveClass) bool {
	return !c.HasSuperclass() && !c.HasMethod(dumpMethod)
}

// objectName is the expression that starts the serialized form. Data
// classes print their object name, other classes their class name.
func objectName(c *model.EffectiveClass) string {
	if c.HasSuperclass() {
		return "get_object_name()"
	}
	return quote(c.Name)
}

// writeToStr renders "<Class>: a=..., b=..." over every effective
// attribute. Attributes that render over several lines (references and
// lists of references) start on a new line indented one level deeper, and
// force a line break before the attribute that follows them.
func writeToStr(w *writer.Writer, c *model.EffectiveClass) {
	w.WriteBlock(fmt.Sprintf("std::string %s::to_str(const std::string ind) const {", GenClassName(c.Name)), "}", func() {
		w.WriteLine("std::stringstream ss;")
		if len(c.Attributes) == 0 {
			w.WriteLinef("ss << %s;", objectName(c))
			w.WriteLine("return ss.str();")
			return
		}

		w.WriteLinef(`ss << %s << ": " <<`, objectName(c))
		w.Indent()
		w.Indent()
		lastNewline := false
		for i, a := range c.Attributes {
			start := `"`
			if !lastNewline {
				start = `"\n" << ind + "  " << "`
			}

			var line string
			newline := false
			switch {
			case a.Type.IsList() && a.Type.Element().IsReference():
				line = fmt.Sprintf(`%s%s=" << %s(%s, ind + "  ")`, start, a.Name, vecPtrToStr, a.Name)
				newline = true
			case a.Type.IsList():
				line = fmt.Sprintf(`"%s=" << %s(%s, ind + "  ")`, a.Name, vecNonptrToStr, a.Name)
			case a.Type.IsReference():
				line = fmt.Sprintf(`%s%s=" << "(" << ((%s != nullptr) ? %s->to_str(ind + "  ") : "null" ) << ")"`,
					start, a.Name, a.Name, a.Name)
				newline = true
			default:
				line = fmt.Sprintf(`"%s=" << %s`, a.Name, a.Name)
			}

			switch {
			case i == len(c.Attributes)-1:
				line += ";"
			case newline:
				line += ` << ", " << "\n" << ind + "  " <<`
			default:
				line += ` << ", " <<`
			}
			w.WriteLine(line)
			lastNewline = newline
		}
		w.Dedent()
		w.Dedent()
		w.WriteLine("return ss.str();")
	})
}
