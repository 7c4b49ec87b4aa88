// Package sink writes rendered artifacts to disk. Generated files are
// rewritten only when their content changes; stubs are created once and
// never touched again.
package sink

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/oserror"
	"github.com/mcell/classgen/internal/codegen"
	"github.com/rs/zerolog"
)

// FileSystem abstracts the file operations the sink needs
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Outcome describes what Write did with a file
type Outcome int

const (
	Written Outcome = iota
	Unchanged
	SkippedExisting
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Unchanged:
		return "unchanged"
	case SkippedExisting:
		return "skipped"
	default:
		return "unknown"
	}
}

// Sink places generated files under GeneratedDir and stubs under APIDir
type Sink struct {
	fs           FileSystem
	generatedDir string
	apiDir       string
	logger       zerolog.Logger
}

// New creates a sink backed by the OS filesystem
func New(generatedDir, apiDir string, logger zerolog.Logger) *Sink {
	return NewWithFileSystem(&osFileSystem{}, generatedDir, apiDir, logger)
}

// NewWithFileSystem creates a sink backed by fs
func NewWithFileSystem(fs FileSystem, generatedDir, apiDir string, logger zerolog.Logger) *Sink {
	return &Sink{
		fs:           fs,
		generatedDir: generatedDir,
		apiDir:       apiDir,
		logger:       logger.With().Str("component", "sink").Logger(),
	}
}

// Path returns the destination of f on disk
func (s *Sink) Path(f codegen.File) string {
	if f.Kind == codegen.Stub {
		return filepath.Join(s.apiDir, f.Path)
	}
	return filepath.Join(s.generatedDir, f.Path)
}

// Write stores f according to its kind
func (s *Sink) Write(f codegen.File) (Outcome, error) {
	path := s.Path(f)

	switch f.Kind {
	case codegen.Stub:
		_, err := s.fs.Stat(path)
		if err == nil {
			s.logger.Debug().Str("path", path).Msg("stub exists, leaving it untouched")
			return SkippedExisting, nil
		}
		if !oserror.IsNotExist(err) {
			return 0, errors.Wrapf(err, "checking stub %s", path)
		}
	default:
		existing, err := s.fs.ReadFile(path)
		if err == nil && bytes.Equal(existing, f.Content) {
			s.logger.Debug().Str("path", path).Msg("unchanged")
			return Unchanged, nil
		}
		if err != nil && !oserror.IsNotExist(err) {
			return 0, errors.Wrapf(err, "reading %s", path)
		}
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := s.fs.WriteFile(path, f.Content, 0o644); err != nil {
		return 0, errors.Wrapf(err, "writing %s", path)
	}

	s.logger.Debug().Str("path", path).Str("kind", f.Kind.String()).Msg("written")
	return Written, nil
}
