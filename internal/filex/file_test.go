package filex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesMissingParents(t *testing.T) {
	want := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(want))

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	err := EnsureDir(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotDir))
}

func TestEnsureDir_MkdirFailureIsNotErrNotDir(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o660))

	err := EnsureDir(filepath.Join(parent, "child"))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotDir))
}
