package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bookshelf/internal/filex"
)

// FS stores objects as files below a base directory.
type FS struct {
	basePath string
}

var _ Engine = (*FS)(nil)

// NewFS prepares basePath, creating it with parents when it does not exist.
func NewFS(basePath string) (*FS, error) {
	if err := filex.EnsureDir(basePath); err != nil {
		if errors.Is(err, filex.ErrNotDir) {
			return nil, fmt.Errorf("%w: %s", ErrBasePathNotDir, basePath)
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreateBaseDir, err)
	}

	return &FS{basePath: basePath}, nil
}

// Put writes src to basePath/name. name is joined as is, so separators and
// ".." segments are honoured.
func (e *FS) Put(ctx context.Context, name string, src io.Reader) (Path, error) {
	if err := ctx.Err(); err != nil {
		return Path{}, fmt.Errorf("%w: %w", ErrPut, err)
	}

	dst := filepath.Join(e.basePath, name)

	f, err := os.Create(dst)
	if err != nil {
		return Path{}, fmt.Errorf("%w: %w", ErrPut, err)
	}

	if _, err := io.Copy(f, &ctxReader{ctx: ctx, r: src}); err != nil {
		_ = f.Close()
		return Path{}, fmt.Errorf("%w: copy to %s: %w", ErrPut, dst, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return Path{}, fmt.Errorf("%w: sync %s: %w", ErrPut, dst, err)
	}

	if err := f.Close(); err != nil {
		return Path{}, fmt.Errorf("%w: close %s: %w", ErrPut, dst, err)
	}

	return Path{Kind: KindFS, Value: dst}, nil
}

func (e *FS) Delete(ctx context.Context, p Path) error {
	if err := checkKind(KindFS, p); err != nil {
		return err
	}

	if _, err := os.Stat(p.Value); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	if err := os.Remove(p.Value); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	return nil
}

// ctxReader stops a long copy once the caller gives up.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
