package notestore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectoryIsIdempotent(t *testing.T) {
	s := New(afero.NewMemMapFs())

	path, err := s.EnsureDirectory("/notes/a/b")
	require.NoError(t, err)
	assert.Equal(t, "/notes/a/b", path)

	_, err = s.EnsureDirectory("/notes/a/b")
	require.NoError(t, err)
	assert.True(t, s.IsDir("/notes/a/b"))
}

func TestListEntriesCreatesMissingDirectory(t *testing.T) {
	s := New(afero.NewMemMapFs())

	names, err := s.ListEntries("/fresh")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
	assert.True(t, s.IsDir("/fresh"))
}

func TestListEntriesReturnsChildNames(t *testing.T) {
	s := New(afero.NewMemMapFs())
	require.NoError(t, s.WriteText("/root/b.md", "b"))
	require.NoError(t, s.WriteText("/root/a.md", "a"))
	_, err := s.EnsureDirectory("/root/folder")
	require.NoError(t, err)

	names, err := s.ListEntries("/root")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "b.md", "folder"}, names)
}

func TestListEntriesOnFileFailsWithEmptySlice(t *testing.T) {
	s := NewOS()
	file := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, s.WriteText(file, "a"))

	names, err := s.ListEntries(file)
	require.Error(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestReadTextMissingFileIsEmpty(t *testing.T) {
	s := New(afero.NewMemMapFs())

	content, err := s.ReadText("/nowhere/note.md")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestWriteTextCreatesParentsAndOverwrites(t *testing.T) {
	s := New(afero.NewMemMapFs())

	require.NoError(t, s.WriteText("/root/deep/er/note.md", "first"))
	require.NoError(t, s.WriteText("/root/deep/er/note.md", "second"))

	content, err := s.ReadText("/root/deep/er/note.md")
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}

func TestCreateFileDoesNotEraseExistingContent(t *testing.T) {
	s := New(afero.NewMemMapFs())

	created, err := s.CreateFile("/root/note.md")
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.WriteText("/root/note.md", "keep me"))

	created, err = s.CreateFile("/root/note.md")
	require.NoError(t, err)
	assert.False(t, created)

	content, err := s.ReadText("/root/note.md")
	require.NoError(t, err)
	assert.Equal(t, "keep me", content)
}

func TestCreateFileOverDirectoryFails(t *testing.T) {
	s := New(afero.NewMemMapFs())
	_, err := s.EnsureDirectory("/root/name.md")
	require.NoError(t, err)

	_, err = s.CreateFile("/root/name.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestRenameMovesFile(t *testing.T) {
	root := t.TempDir()
	s := NewOS()
	oldPath := filepath.Join(root, "old.md")
	newPath := filepath.Join(root, "new.md")
	require.NoError(t, s.WriteText(oldPath, "body"))

	require.NoError(t, s.Rename(oldPath, newPath))

	assert.False(t, s.Exists(oldPath))
	content, err := s.ReadText(newPath)
	require.NoError(t, err)
	assert.Equal(t, "body", content)
}

func TestRenameRefusesExistingDestination(t *testing.T) {
	root := t.TempDir()
	s := NewOS()
	a := filepath.Join(root, "a.md")
	b := filepath.Join(root, "b.md")
	require.NoError(t, s.WriteText(a, "a"))
	require.NoError(t, s.WriteText(b, "b"))

	err := s.Rename(a, b)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "rename", ioErr.Op)
	assert.True(t, errors.Is(err, fs.ErrExist))

	content, err := s.ReadText(b)
	require.NoError(t, err)
	assert.Equal(t, "b", content, "destination must not be overwritten")
}

func TestRenameMissingSourceFails(t *testing.T) {
	root := t.TempDir()
	s := NewOS()

	err := s.Rename(filepath.Join(root, "ghost.md"), filepath.Join(root, "x.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDeleteRemovesDirectoryRecursively(t *testing.T) {
	root := t.TempDir()
	s := NewOS()
	dir := filepath.Join(root, "Projects")
	require.NoError(t, s.WriteText(filepath.Join(dir, "sub", "idea.md"), "x"))
	require.NoError(t, s.WriteText(filepath.Join(dir, "plan.md"), "y"))

	require.NoError(t, s.Delete(dir))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingPathFails(t *testing.T) {
	s := NewOS()

	err := s.Delete(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadTextPermissionErrorIsReported(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("cannot test permission errors as root")
	}

	root := t.TempDir()
	path := filepath.Join(root, "locked.md")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0o000))
	defer os.Chmod(path, 0o644) // cleanup

	content, err := NewOS().ReadText(path)
	assert.Equal(t, "", content)
	require.Error(t, err)
}
