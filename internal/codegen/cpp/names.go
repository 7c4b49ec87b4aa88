package cpp

import (
	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/codegen/writer"
)

// Names renders gen_names.h, one string constant per class and member name
func (g *Generator) Names(ctx *codegen.Context) ([]codegen.File, error) {
	w := writer.NewWriter(indent)
	g.preamble(w, true)
	guardOpen(w, namesGuard)

	g.beginNamespaces(w)

	for _, name := range ctx.ClassNames {
		w.WriteLinef(`const char* const %s = "%s";`, NameConstant(name, true), name)
	}
	w.BlankLine()
	for _, name := range ctx.MemberNames {
		w.WriteLinef(`const char* const %s = "%s";`, NameConstant(name, false), name)
	}
	w.BlankLine()

	g.endNamespaces(w)
	guardClose(w, namesGuard)

	return []codegen.File{{Path: namesFile, Kind: codegen.Generated, Content: w.Bytes()}}, nil
}
