package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/codegen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFileSystem struct {
	mock.Mock
}

func (m *mockFileSystem) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(os.FileInfo), args.Error(1)
}

func (m *mockFileSystem) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *mockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return m.Called(name, data, perm).Error(0)
}

func newTestSink(t *testing.T) (*Sink, string, string) {
	t.Helper()
	root := t.TempDir()
	gen := filepath.Join(root, "generated")
	api := filepath.Join(root, "api")
	return New(gen, api, zerolog.Nop()), gen, api
}

func TestSink_GeneratedFile(t *testing.T) {
	// Test plan:
	// - First write creates the directory and the file
	// - Identical content is not rewritten
	// - Changed content overwrites the file

	s, gen, _ := newTestSink(t)
	f := codegen.File{Path: "gen_box.h", Kind: codegen.Generated, Content: []byte("v1")}

	outcome, err := s.Write(f)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	data, err := os.ReadFile(filepath.Join(gen, "gen_box.h"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	outcome, err = s.Write(f)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)

	f.Content = []byte("v2")
	outcome, err = s.Write(f)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	data, err = os.ReadFile(filepath.Join(gen, "gen_box.h"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestSink_StubIsNeverOverwritten(t *testing.T) {
	s, _, api := newTestSink(t)
	require.NoError(t, os.MkdirAll(api, 0o755))
	path := filepath.Join(api, "box.h")
	require.NoError(t, os.WriteFile(path, []byte("hand written"), 0o644))

	outcome, err := s.Write(codegen.File{Path: "box.h", Kind: codegen.Stub, Content: []byte("template")})
	require.NoError(t, err)
	assert.Equal(t, SkippedExisting, outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand written", string(data))
}

func TestSink_StubCreatedWhenAbsent(t *testing.T) {
	s, _, api := newTestSink(t)

	outcome, err := s.Write(codegen.File{Path: "box.h", Kind: codegen.Stub, Content: []byte("template")})
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	data, err := os.ReadFile(filepath.Join(api, "box.h"))
	require.NoError(t, err)
	assert.Equal(t, "template", string(data))
}

func TestSink_Path(t *testing.T) {
	s := New("out/gen", "out/api", zerolog.Nop())
	assert.Equal(t, filepath.Join("out/gen", "gen_box.h"), s.Path(codegen.File{Path: "gen_box.h", Kind: codegen.Generated}))
	assert.Equal(t, filepath.Join("out/api", "box.h"), s.Path(codegen.File{Path: "box.h", Kind: codegen.Stub}))
}

func TestSink_Errors(t *testing.T) {
	t.Run("write failure", func(t *testing.T) {
		fs := &mockFileSystem{}
		fs.On("ReadFile", "gen/gen_box.h").Return(nil, os.ErrNotExist)
		fs.On("MkdirAll", "gen", os.FileMode(0o755)).Return(nil)
		fs.On("WriteFile", "gen/gen_box.h", []byte("x"), os.FileMode(0o644)).Return(errors.New("disk full"))

		s := NewWithFileSystem(fs, "gen", "api", zerolog.Nop())
		_, err := s.Write(codegen.File{Path: "gen_box.h", Kind: codegen.Generated, Content: []byte("x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "writing gen/gen_box.h")
		assert.Contains(t, err.Error(), "disk full")
		fs.AssertExpectations(t)
	})

	t.Run("stat failure", func(t *testing.T) {
		fs := &mockFileSystem{}
		fs.On("Stat", "api/box.h").Return(nil, os.ErrPermission)

		s := NewWithFileSystem(fs, "gen", "api", zerolog.Nop())
		_, err := s.Write(codegen.File{Path: "box.h", Kind: codegen.Stub})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checking stub api/box.h")
		fs.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("read failure", func(t *testing.T) {
		fs := &mockFileSystem{}
		fs.On("ReadFile", "gen/gen_box.h").Return(nil, os.ErrPermission)

		s := NewWithFileSystem(fs, "gen", "api", zerolog.Nop())
		_, err := s.Write(codegen.File{Path: "gen_box.h", Kind: codegen.Generated})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading gen/gen_box.h")
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "written", Written.String())
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "skipped", SkippedExisting.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
