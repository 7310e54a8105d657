// Package services orchestrates storage and user operations over the
// repositories and storage engines. Every service is safe for concurrent use.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/storages"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/google/uuid"
)

type Creator struct {
	repo storages.Repository
	log  logging.Logger
}

func NewCreator(repo storages.Repository, l logging.Logger) *Creator {
	return &Creator{repo: repo, log: l.With("service", "creator")}
}

// Create mints an id for the new storage and persists it.
func (s *Creator) Create(ctx context.Context, name storage.Name, settings storage.Settings) (uuid.UUID, error) {
	st := storage.New(name, settings)

	err := s.repo.Insert(ctx, storages.InsertDTO{
		ID:       st.ID,
		Name:     st.Name,
		Settings: st.Settings,
	})
	if err != nil {
		s.log.Error(ctx, "insert storage", "name", name.String(), "error", err)
		return uuid.Nil, fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Info(ctx, "storage created", "id", st.ID, "name", name.String(), "type", settings.Kind())
	return st.ID, nil
}

type Lister struct {
	repo storages.Repository
	log  logging.Logger
}

func NewLister(repo storages.Repository, l logging.Logger) *Lister {
	return &Lister{repo: repo, log: l.With("service", "lister")}
}

// List returns the page after cursor, or the first page when cursor is nil.
func (s *Lister) List(ctx context.Context, cursor *pagination.Cursor) (pagination.Page[storage.Storage], error) {
	var from *uuid.UUID
	if cursor != nil {
		from = cursor.LastID
	}

	page, err := s.repo.List(ctx, from)
	if err != nil {
		s.log.Error(ctx, "list storages", "error", err)
		return pagination.Page[storage.Storage]{}, fmt.Errorf("%w: %w", ErrDB, err)
	}

	return page, nil
}

type Getter struct {
	repo storages.Repository
	log  logging.Logger
}

func NewGetter(repo storages.Repository, l logging.Logger) *Getter {
	return &Getter{repo: repo, log: l.With("service", "getter")}
}

// Get returns nil, nil when the storage does not exist.
func (s *Getter) Get(ctx context.Context, id uuid.UUID) (*storage.Storage, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Error(ctx, "get storage", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDB, err)
	}
	return st, nil
}

type Updater struct {
	repo storages.Repository
	log  logging.Logger
}

func NewUpdater(repo storages.Repository, l logging.Logger) *Updater {
	return &Updater{repo: repo, log: l.With("service", "updater")}
}

// Update replaces both name and settings. A missing storage yields ErrNotFound,
// any backend failure ErrDB.
func (s *Updater) Update(ctx context.Context, id uuid.UUID, name storage.Name, settings storage.Settings) (*storage.Storage, error) {
	st, err := s.repo.Update(ctx, id, storages.UpdateDTO{Name: name, Settings: settings})
	if err != nil {
		s.log.Error(ctx, "update storage", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDB, err)
	}
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.log.Info(ctx, "storage updated", "id", id, "name", name.String(), "type", settings.Kind())
	return st, nil
}

type Deleter struct {
	repo storages.Repository
	log  logging.Logger
}

func NewDeleter(repo storages.Repository, l logging.Logger) *Deleter {
	return &Deleter{repo: repo, log: l.With("service", "deleter")}
}

// Delete removes the record only; files already written to the engine stay.
func (s *Deleter) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete storage", "id", id, "error", err)
		return fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Info(ctx, "storage deleted", "id", id)
	return nil
}
