package cpp

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/codegen/writer"
	"github.com/mcell/classgen/internal/model"
	"github.com/mcell/classgen/internal/schema"
)

// writeBindings renders define_pybinding_<Class>. The constructor overload
// takes the full effective attribute list so that it matches the
// constructor macro of the extension class.
func writeBindings(w *writer.Writer, c *model.EffectiveClass) error {
	bases := c.Name
	if c.ChainsConstructor() {
		bases += ", " + c.Superclass
	}

	var bodyErr error
	w.WriteBlock(fmt.Sprintf("py::class_<%s> %s(py::module& m) {", c.Name, BindingFunc(c.Name)), "}", func() {
		w.WriteLinef(`return py::class_<%s, %s<%s>>(m, "%s")`, bases, typeShared, c.Name, c.Name)
		w.Indent()
		w.Indent()

		if bodyErr = writeInit(w, c.Attributes); bodyErr != nil {
			return
		}
		w.WriteLinef(`.def("%s", &%s::%s)`, checkSemantics, c.Name, checkSemantics)
		w.WriteLinef(`.def("__str__", &%s::to_str, py::arg("ind") = std::string(""))`, c.Name)
		if c.HasSuperclass() {
			w.WriteLinef(`.def("__eq__", &%s::__eq__, py::arg("other"))`, c.Name)
		}

		for _, m := range c.Methods {
			var line string
			if line, bodyErr = methodBinding(c, m); bodyErr != nil {
				return
			}
			w.WriteLine(line)
		}
		if !c.HasMethod(dumpMethod) {
			w.WriteLinef(`.def("%s", &%s::%s)`, dumpMethod, c.Name, dumpMethod)
		}

		for _, a := range c.Attributes {
			if a.Name == schema.ReservedAttrName {
				continue
			}
			w.WriteLinef(`.def_property("%s", &%s::get_%s, &%s::set_%s)`, a.Name, c.Name, a.Name, c.Name, a.Name)
		}

		w.Dedent()
		w.WriteLine(";")
		w.Dedent()
	})
	return bodyErr
}

func writeInit(w *writer.Writer, attrs []schema.AttributeDef) error {
	types := make([]string, 0, len(attrs))
	args := make([]string, 0, len(attrs))
	for _, a := range attrs {
		types = append(types, ParamType(a.Type))
		arg, err := pyArg(a.Name, a.Type, a.Default)
		if err != nil {
			return errors.Wrapf(err, "attribute %q", a.Name)
		}
		args = append(args, arg)
	}

	w.WriteLine(".def(")
	w.Indent()
	w.Indent()
	w.WriteLine("py::init<")
	w.Indent()
	w.WriteList(types, ",")
	w.Dedent()
	if len(args) == 0 {
		w.WriteLine(">()")
	} else {
		w.WriteLine(">(),")
		w.WriteList(args, ",")
	}
	w.Dedent()
	w.Dedent()
	w.WriteLine(")")
	return nil
}

func pyArg(name string, t schema.TypeDescriptor, lit *schema.Literal) (string, error) {
	arg := fmt.Sprintf(`py::arg("%s")`, name)
	def, ok, err := DefaultValue(t, lit)
	if err != nil {
		return "", err
	}
	if ok {
		arg += " = " + def
	}
	return arg, nil
}

// methodBinding registers one method. Overloaded names are wrapped in
// py::overload_cast with the parameter types so pybind11 can pick the
// right one.
func methodBinding(c *model.EffectiveClass, m schema.MethodDef) (string, error) {
	target := fmt.Sprintf("&%s::%s", c.Name, m.Name)
	if c.IsOverloaded(m.Name) {
		types := make([]string, 0, len(m.Params))
		for _, p := range m.Params {
			types = append(types, ParamType(p.Type))
		}
		target = fmt.Sprintf("py::overload_cast<%s>(%s)", strings.Join(types, ", "), target)
	}

	parts := []string{fmt.Sprintf(`"%s"`, m.Name), target}
	for _, p := range m.Params {
		arg, err := pyArg(p.Name, p.Type, p.Default)
		if err != nil {
			return "", errors.Wrapf(err, "method %q", m.Name)
		}
		parts = append(parts, arg)
	}
	return fmt.Sprintf(".def(%s)", strings.Join(parts, ", ")), nil
}
