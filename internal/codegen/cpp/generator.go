// Package cpp renders C++ base classes, extension stubs and pybind11
// registration code from a flattened schema.
package cpp

import (
	"strings"

	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/codegen/writer"
	"github.com/mcell/classgen/internal/model"
)

// TargetName is the registry name of this target
const TargetName = "cpp"

const indent = "  "

const generatedNotice = "// This file was generated by classgen. Do not edit, changes will be overwritten.\n\n"

// DefaultCopyright is prepended to every artifact unless a copyright file is configured
const DefaultCopyright = `/******************************************************************************
 *
 * Copyright (C) 2020 by
 * The Salk Institute for Biological Studies and
 * Pittsburgh Supercomputing Center, Carnegie Mellon University
 *
 * This program is free software; you can redistribute it and/or
 * modify it under the terms of the GNU General Public License
 * as published by the Free Software Foundation; either version 2
 * of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301,
 * USA.
 *
******************************************************************************/
`

// Generator renders the C++/pybind11 artifacts
type Generator struct {
	opts codegen.Options
}

var _ codegen.Target = (*Generator)(nil)

// NewGenerator creates a new C++ generator. Empty include directories and
// copyright fall back to the conventional layout.
func NewGenerator(opts codegen.Options) *Generator {
	if opts.Copyright == "" {
		opts.Copyright = DefaultCopyright
	}
	if opts.IncludeAPIDir == "" {
		opts.IncludeAPIDir = "../api"
	}
	if opts.IncludeGeneratedDir == "" {
		opts.IncludeGeneratedDir = "../generated"
	}
	return &Generator{opts: opts}
}

// Name returns the registry name of the target
func (g *Generator) Name() string {
	return TargetName
}

// Class renders the generated header, the generated definition unit with
// the bindings, and the extension stub of one class
func (g *Generator) Class(ctx *codegen.Context, c *model.EffectiveClass) ([]codegen.File, error) {
	header, err := g.classHeader(ctx, c)
	if err != nil {
		return nil, err
	}
	source, err := g.classSource(ctx, c)
	if err != nil {
		return nil, err
	}

	return []codegen.File{
		{Path: GenFileName(c.Name, extHeader), Kind: codegen.Generated, Content: header},
		{Path: GenFileName(c.Name, extSource), Kind: codegen.Generated, Content: source},
		{Path: APIFileName(c.Name, extHeader), Kind: codegen.Stub, Content: g.stub(c)},
	}, nil
}

// preamble writes the copyright header and, for generated files, the notice
func (g *Generator) preamble(w *writer.Writer, generated bool) {
	copyright := g.opts.Copyright
	if !strings.HasSuffix(copyright, "\n") {
		copyright += "\n"
	}
	w.WriteRaw(copyright)
	w.WriteRaw("\n")
	if generated {
		w.WriteRaw(generatedNotice)
	}
}

func (g *Generator) beginNamespaces(w *writer.Writer) {
	for _, ns := range g.opts.Namespaces {
		w.WriteLinef("namespace %s {", ns)
	}
	w.BlankLine()
}

func (g *Generator) endNamespaces(w *writer.Writer) {
	for i := len(g.opts.Namespaces) - 1; i >= 0; i-- {
		w.WriteLinef("} // namespace %s", g.opts.Namespaces[i])
	}
	w.BlankLine()
}

func (g *Generator) apiInclude(class string) string {
	return includePath(g.opts.IncludeAPIDir, APIFileName(class, extHeader))
}

func (g *Generator) commonInclude() string {
	return includePath(g.opts.IncludeAPIDir, commonHeaderBase)
}

func guardOpen(w *writer.Writer, guard string) {
	w.WriteLinef("#ifndef %s", guard)
	w.WriteLinef("#define %s", guard)
	w.BlankLine()
}

func guardClose(w *writer.Writer, guard string) {
	w.WriteLinef("#endif // %s", guard)
}
