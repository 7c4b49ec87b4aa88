package codegen

import (
	"sort"
	"strings"

	"github.com/mcell/classgen/internal/schema"
)

// Context carries the read-only sets derived from the whole schema. It is
// built once before any class is emitted and shared by every emitter call.
type Context struct {
	Schema *schema.Schema

	// Enums holds the declared enum names
	Enums map[string]bool

	// ClassNames and MemberNames are the name table, each sorted
	// case-insensitively. Members are attribute, method and param names.
	ClassNames  []string
	MemberNames []string
}

// NewContext derives the emission context from a validated schema
func NewContext(s *schema.Schema) *Context {
	classes := map[string]bool{}
	members := map[string]bool{}
	for _, c := range s.Classes {
		classes[c.Name] = true
		for _, a := range c.Items {
			members[a.Name] = true
		}
		for _, m := range c.Methods {
			members[m.Name] = true
			for _, p := range m.Params {
				members[p.Name] = true
			}
		}
	}

	return &Context{
		Schema:      s,
		Enums:       s.EnumNames(),
		ClassNames:  sortFolded(classes),
		MemberNames: sortFolded(members),
	}
}

// IsEnum reports whether name is a declared enum
func (c *Context) IsEnum(name string) bool {
	return c.Enums[name]
}

// sortFolded sorts case-insensitively; names equal under folding keep a
// stable byte order
func sortFolded(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}
