package cpp

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/codegen/writer"
	"github.com/mcell/classgen/internal/schema"
)

const declDefineConstants = "void define_pybinding_constants(py::module& m)"

// pybind11 wrapper per constant type; int and long share py::int_
var pyConstantTypes = map[schema.Kind]string{
	schema.KindFloat:  "float_",
	schema.KindString: "str",
	schema.KindInt:    "int_",
	schema.KindLong:   "int_",
	schema.KindBool:   "bool_",
}

// Constants renders gen_constants.h and gen_constants.cpp
func (g *Generator) Constants(ctx *codegen.Context) ([]codegen.File, error) {
	header, err := g.constantsHeader(ctx.Schema)
	if err != nil {
		return nil, err
	}
	source, err := g.constantsSource(ctx.Schema)
	if err != nil {
		return nil, err
	}

	return []codegen.File{
		{Path: constantsBase + "." + extHeader, Kind: codegen.Generated, Content: header},
		{Path: constantsBase + "." + extSource, Kind: codegen.Generated, Content: source},
	}, nil
}

func (g *Generator) constantsHeader(s *schema.Schema) ([]byte, error) {
	w := writer.NewWriter(indent)
	g.preamble(w, true)
	guardOpen(w, constantsGuard)

	w.WriteLine("#include <string>")
	w.WriteLine("#include <ostream>")
	w.BlankLine()

	g.beginNamespaces(w)

	for _, c := range s.Constants {
		value, err := constantValue(c)
		if err != nil {
			return nil, err
		}
		w.WriteLinef("const %s %s = %s;", Resolve(c.Type).Spelling, c.Name, value)
	}
	w.BlankLine()

	for _, e := range s.Enums {
		writeEnum(w, e)
		w.BlankLine()
	}

	w.WriteLine(declDefineConstants + ";")
	w.BlankLine()

	g.endNamespaces(w)
	guardClose(w, constantsGuard)
	return w.Bytes(), nil
}

func constantValue(c schema.ConstantDef) (string, error) {
	switch c.Type.Kind {
	case schema.KindString:
		return quote(c.Value.Text), nil
	case schema.KindBool:
		b, err := c.Value.Bool()
		if err != nil {
			return "", errors.Wrapf(err, "constant %q", c.Name)
		}
		return fmt.Sprint(b), nil
	default:
		return c.Value.Text, nil
	}
}

// writeEnum renders the scoped enum and a stream operator that prints
// members as "<Enum>.<Member> (<value>)"
func writeEnum(w *writer.Writer, e schema.EnumDef) {
	w.WriteLinef("enum class %s {", e.Name)
	w.Indent()
	members := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		members = append(members, fmt.Sprintf("%s = %d", v.Name, v.Int))
	}
	w.WriteList(members, ",")
	w.Dedent()
	w.WriteLine("};")
	w.BlankLine()

	w.WriteBlock(fmt.Sprintf("static inline std::ostream& operator << (std::ostream& out, const %s v) {", e.Name), "}", func() {
		w.WriteBlock("switch (v) {", "}", func() {
			for _, v := range e.Values {
				w.WriteLinef(`case %s::%s: out << "%s.%s (%d)"; break;`, e.Name, v.Name, e.Name, v.Name, v.Int)
			}
		})
		w.WriteLine("return out;")
	})
}

func (g *Generator) constantsSource(s *schema.Schema) ([]byte, error) {
	w := writer.NewWriter(indent)
	g.preamble(w, true)

	w.WriteLinef(`#include "%s"`, g.commonInclude())
	w.WriteLinef(`#include "%s.%s"`, constantsBase, extHeader)
	w.BlankLine()

	g.beginNamespaces(w)

	var bodyErr error
	w.WriteBlock(declDefineConstants+" {", "}", func() {
		for _, c := range s.Constants {
			py, ok := pyConstantTypes[c.Type.Kind]
			if !ok {
				bodyErr = errors.Newf("constant %q has unsupported type %s", c.Name, c.Type.String())
				return
			}
			w.WriteLinef(`m.attr("%s") = py::%s(%s);`, c.Name, py, c.Name)
		}

		for _, e := range s.Enums {
			w.WriteLinef(`py::enum_<%s>(m, "%s", py::arithmetic())`, e.Name, e.Name)
			w.Indent()
			for _, v := range e.Values {
				w.WriteLinef(`.value("%s", %s::%s)`, v.Name, e.Name, v.Name)
			}
			w.WriteLine(".export_values();")
			w.Dedent()
		}
	})
	if bodyErr != nil {
		return nil, bodyErr
	}
	w.BlankLine()

	g.endNamespaces(w)
	return w.Bytes(), nil
}
