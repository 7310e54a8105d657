// Package storages persists storage records and lists them with keyset
// pagination ordered by id.
package storages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/google/uuid"
)

type InsertDTO struct {
	ID       uuid.UUID
	Name     storage.Name
	Settings storage.Settings
}

type UpdateDTO struct {
	Name     storage.Name
	Settings storage.Settings
}

// Repository is safe for concurrent use when backed by *sql.DB.
type Repository interface {
	Insert(ctx context.Context, dto InsertDTO) error
	// List returns up to pagination.Limit rows with id strictly greater than
	// from (or from the start when from is nil), in ascending id order.
	List(ctx context.Context, from *uuid.UUID) (pagination.Page[storage.Storage], error)
	// Get returns nil, nil when no row has the id.
	Get(ctx context.Context, id uuid.UUID) (*storage.Storage, error)
	// Update replaces name and settings and returns the new row, or nil, nil
	// when nothing matched.
	Update(ctx context.Context, id uuid.UUID, dto UpdateDTO) (*storage.Storage, error)
	// Delete succeeds whether or not a row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStorage(row rowScanner) (storage.Storage, error) {
	var (
		s        storage.Storage
		settings []byte
	)

	if err := row.Scan(&s.ID, &s.Name, &settings); err != nil {
		return storage.Storage{}, err
	}

	decoded, err := storage.DecodeSettings(settings)
	if err != nil {
		return storage.Storage{}, fmt.Errorf("storage %s: %w", s.ID, err)
	}
	s.Settings = decoded

	return s, nil
}

func encodeSettings(s storage.Settings) (string, error) {
	b, err := storage.EncodeSettings(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func storageID(s storage.Storage) uuid.UUID {
	return s.ID
}
