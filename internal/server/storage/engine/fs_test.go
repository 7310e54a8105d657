package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFS_CreatesMissingBaseWithParents(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b", "books")

	_, err := NewFS(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFS_ExistingDirIsReused(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "keep.txt"), []byte("x"), 0o644))

	_, err := NewFS(base)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "keep.txt"))
	assert.NoError(t, err)
}

func TestNewFS_BaseIsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, nil, 0o644))

	_, err := NewFS(base)
	assert.ErrorIs(t, err, ErrBasePathNotDir)
	assert.NotErrorIs(t, err, ErrFailedToCreateBaseDir)
}

func TestNewFS_CannotCreate(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0o644))

	_, err := NewFS(filepath.Join(parent, "child"))
	assert.ErrorIs(t, err, ErrFailedToCreateBaseDir)
	assert.NotErrorIs(t, err, ErrBasePathNotDir)
}

func TestFS_PutWritesAllBytes(t *testing.T) {
	base := t.TempDir()
	e, err := NewFS(base)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("0123456789"), 10_000)
	p, err := e.Put(context.Background(), "big.bin", iotest.OneByteReader(bytes.NewReader(payload)))
	require.NoError(t, err)

	assert.Equal(t, KindFS, p.Kind)
	assert.Equal(t, filepath.Join(base, "big.bin"), p.Value)

	got, err := os.ReadFile(p.Value)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFS_PutOverwrites(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = e.Put(ctx, "a.txt", strings.NewReader("first version"))
	require.NoError(t, err)
	p, err := e.Put(ctx, "a.txt", strings.NewReader("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(p.Value)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFS_PutSourceError(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = e.Put(context.Background(), "a.txt", iotest.ErrReader(boom))
	assert.ErrorIs(t, err, ErrPut)
	assert.ErrorIs(t, err, boom)
}

func TestFS_PutMissingSubdir(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = e.Put(context.Background(), filepath.Join("nope", "a.txt"), strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrPut)
}

func TestFS_PutCanceled(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Put(ctx, "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrPut)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFS_DeleteIsIdempotent(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	p, err := e.Put(ctx, "a.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, e.Delete(ctx, p))
	require.NoError(t, e.Delete(ctx, p))

	_, err = os.Stat(p.Value)
	assert.True(t, os.IsNotExist(err))
}

func TestFS_DeleteWrongKind(t *testing.T) {
	e, err := NewFS(t.TempDir())
	require.NoError(t, err)

	err = e.Delete(context.Background(), Path{Kind: KindS3, Value: "x"})
	assert.ErrorIs(t, err, ErrPathKindMismatch)
}

func TestFS_DeleteNonEmptyDirFails(t *testing.T) {
	base := t.TempDir()
	e, err := NewFS(base)
	require.NoError(t, err)

	dir := filepath.Join(base, "sub")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), nil, 0o644))

	err = e.Delete(context.Background(), Path{Kind: KindFS, Value: dir})
	assert.ErrorIs(t, err, ErrDelete)
}
