// Package writer provides an indentation-aware text builder for rendering
// C-family source files.
package writer

import (
	"fmt"
	"strings"
)

// Writer provides utilities for generating formatted code with proper indentation
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
	continued    bool
}

// NewWriter creates a new code writer with specified indentation string
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline ends the current line. Inside Continued the line is terminated
// with a backslash.
func (w *Writer) Newline() {
	if w.continued {
		w.sb.WriteString(" \\")
	}
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output already ends with one
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.sb.WriteString("\n")
		w.needsIndent = true
	}
}

// WriteRaw writes text verbatim, ignoring indentation. Used for
// preformatted blocks such as license headers.
func (w *Writer) WriteRaw(text string) {
	w.sb.WriteString(text)
	w.needsIndent = strings.HasSuffix(text, "\n") || w.sb.Len() == 0
}

// WriteList writes each item on its own line, appending sep to all but the
// last one
func (w *Writer) WriteList(items []string, sep string) {
	for i, item := range items {
		if i != len(items)-1 {
			item += sep
		}
		w.WriteLine(item)
	}
}

// Continued renders content as the body of a multi-line preprocessor
// macro: every line written inside content ends with a backslash. The
// closing line of the macro is written after Continued returns.
func (w *Writer) Continued(content func()) {
	w.continued = true
	content()
	w.continued = false
}

// String returns the generated code as a string
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes content inside a block with proper indentation
// Example: WriteBlock("if (x) {", "}", func() { w.WriteLine("return;") })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}
