package codegen

import "github.com/mcell/classgen/internal/model"

// FileKind tells the sink how an artifact may be written
type FileKind int

const (
	// Generated artifacts are rewritten on every run.
	Generated FileKind = iota
	// Stub artifacts are hand-edited after creation and are only written when absent.
	Stub
)

func (k FileKind) String() string {
	switch k {
	case Generated:
		return "generated"
	case Stub:
		return "stub"
	default:
		return "unknown"
	}
}

// File is one rendered artifact. Path is relative to the output directory
// selected by Kind.
type File struct {
	Path    string
	Kind    FileKind
	Content []byte
}

// Target is the interface that every output language must implement. All
// methods are pure functions of their arguments; they never touch the
// filesystem.
type Target interface {
	// Name returns the registry name of the target (e.g. "cpp")
	Name() string

	// Constants renders the global constant and enum artifacts
	Constants(ctx *Context) ([]File, error)

	// Class renders the per-class artifacts for one flattened class
	Class(ctx *Context, class *model.EffectiveClass) ([]File, error)

	// Names renders the global symbolic name table
	Names(ctx *Context) ([]File, error)
}

// Options contains common options for code generation
type Options struct {
	// Namespaces wrap every generated declaration, outermost first
	Namespaces []string

	// Copyright is prepended verbatim to every artifact. Empty selects the
	// target's built-in header.
	Copyright string

	// IncludeAPIDir is the include path prefix of the hand-edited headers
	// as seen from the generated directory
	IncludeAPIDir string

	// IncludeGeneratedDir is the include path prefix of the generated
	// headers as seen from the hand-edited directory
	IncludeGeneratedDir string
}
