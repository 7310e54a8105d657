package services

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/storages"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage/engine"
	"github.com/google/uuid"
)

type FileUploader struct {
	repo storages.Repository
	log  logging.Logger
}

func NewFileUploader(repo storages.Repository, l logging.Logger) *FileUploader {
	return &FileUploader{repo: repo, log: l.With("service", "file_uploader")}
}

// Upload streams src into the engine of storage id under name. Nothing is
// persisted besides the bytes themselves.
func (s *FileUploader) Upload(ctx context.Context, id uuid.UUID, name string, src io.Reader) (engine.Path, error) {
	e, err := connect(ctx, s.repo, id)
	if err != nil {
		s.log.Error(ctx, "connect storage", "id", id, "error", err)
		return engine.Path{}, err
	}

	p, err := e.Put(ctx, name, src)
	if err != nil {
		s.log.Error(ctx, "put file", "id", id, "file", name, "error", err)
		return engine.Path{}, fmt.Errorf("%w: %w", ErrPutFileToStorage, err)
	}

	s.log.Info(ctx, "file uploaded", "id", id, "type", p.Kind, "path", p.Value)
	return p, nil
}

type FileDeleter struct {
	repo storages.Repository
	log  logging.Logger
}

func NewFileDeleter(repo storages.Repository, l logging.Logger) *FileDeleter {
	return &FileDeleter{repo: repo, log: l.With("service", "file_deleter")}
}

// Delete removes a file previously returned by FileUploader. Deleting a
// missing file succeeds.
func (s *FileDeleter) Delete(ctx context.Context, id uuid.UUID, p engine.Path) error {
	e, err := connect(ctx, s.repo, id)
	if err != nil {
		s.log.Error(ctx, "connect storage", "id", id, "error", err)
		return err
	}

	if err := e.Delete(ctx, p); err != nil {
		s.log.Error(ctx, "delete file", "id", id, "path", p.Value, "error", err)
		return fmt.Errorf("%w: %w", ErrDeleteFileFromStorage, err)
	}

	s.log.Info(ctx, "file deleted", "id", id, "type", p.Kind, "path", p.Value)
	return nil
}

func connect(ctx context.Context, repo storages.Repository, id uuid.UUID) (engine.Engine, error) {
	st, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDB, err)
	}
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageNotFound, id)
	}

	e, err := st.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectStorage, err)
	}

	return e, nil
}
