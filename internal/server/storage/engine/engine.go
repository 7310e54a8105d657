// Package engine holds the live storage backends a Storage connects to.
// An Engine writes named byte streams and removes what it wrote; the Path it
// returns is the only handle needed to delete the object again.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Kind discriminates engine families on the wire.
type Kind string

const (
	KindFS Kind = "fs"
	KindS3 Kind = "s3"
)

var (
	ErrBasePathNotDir        = errors.New("base path not a directory")
	ErrFailedToCreateBaseDir = errors.New("failed to create directory under base path")
	ErrInvalidSettings       = errors.New("invalid engine settings")
	ErrPut                   = errors.New("put failed")
	ErrDelete                = errors.New("delete failed")
	ErrPathKindMismatch      = errors.New("path belongs to another engine kind")
)

// Path identifies one written object. Value is engine specific: an absolute
// file path for KindFS, an object key for KindS3.
type Path struct {
	Kind  Kind   `json:"type"`
	Value string `json:"value"`
}

type Engine interface {
	// Put drains src into the object called name and returns where it landed.
	// An existing object with the same name is overwritten.
	Put(ctx context.Context, name string, src io.Reader) (Path, error)
	// Delete removes the object at p. A missing object is not an error.
	Delete(ctx context.Context, p Path) error
}

func checkKind(want Kind, p Path) error {
	if p.Kind != want {
		return fmt.Errorf("%w: got %q, want %q", ErrPathKindMismatch, p.Kind, want)
	}
	return nil
}
