package cpp

import (
	"github.com/mcell/classgen/internal/codegen/writer"
	"github.com/mcell/classgen/internal/model"
)

// stub renders <class>.h, the hand-edited extension class. It is only
// written when the file does not exist yet.
func (g *Generator) stub(c *model.EffectiveClass) []byte {
	w := writer.NewWriter(indent)
	g.preamble(w, false)

	guard := APIHeaderGuard(c.Name)
	guardOpen(w, guard)

	w.WriteLinef(`#include "%s"`, includePath(g.opts.IncludeGeneratedDir, GenFileName(c.Name, extHeader)))
	w.WriteLinef(`#include "%s"`, g.commonInclude())
	if c.ChainsConstructor() {
		w.WriteLinef(`#include "%s"`, g.apiInclude(c.Superclass))
	}
	w.BlankLine()

	g.beginNamespaces(w)

	w.WriteLinef("class %s: public %s {", c.Name, GenClassName(c.Name))
	w.WriteLine("public:")
	w.Indent()
	w.WriteLinef("%s()", CtorMacro(c.Name))
	w.Dedent()
	w.WriteLine("};")
	w.BlankLine()

	g.endNamespaces(w)
	guardClose(w, guard)
	return w.Bytes()
}
