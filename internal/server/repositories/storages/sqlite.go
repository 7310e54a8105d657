package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/google/uuid"
)

// SQLiteRepository stores ids as canonical lowercase text, whose byte order
// matches the UUID order Postgres uses, so pages are identical on both.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, dto InsertDTO) error {

	settings, err := encodeSettings(dto.Settings)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO storages (id, name, settings)
		 VALUES (?, ?, ?)
		 `

	if _, err := r.db.ExecContext(ctx, query, dto.ID.String(), dto.Name.String(), settings); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, from *uuid.UUID) (pagination.Page[storage.Storage], error) {

	var (
		rows *sql.Rows
		err  error
	)

	if from == nil {
		query :=
			`SELECT id, name, settings FROM storages
			 ORDER BY id
			 LIMIT ?
			 `
		rows, err = r.db.QueryContext(ctx, query, pagination.Limit)
	} else {
		query :=
			`SELECT id, name, settings FROM storages
			 WHERE id > ?
			 ORDER BY id
			 LIMIT ?
			 `
		rows, err = r.db.QueryContext(ctx, query, from.String(), pagination.Limit)
	}
	if err != nil {
		return pagination.Page[storage.Storage]{}, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]storage.Storage, 0, pagination.Limit)
	for rows.Next() {
		s, err := scanStorage(rows)
		if err != nil {
			return pagination.Page[storage.Storage]{}, fmt.Errorf("db error: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[storage.Storage]{}, fmt.Errorf("db error: %w", err)
	}

	return pagination.NewPage(items, storageID), nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id uuid.UUID) (*storage.Storage, error) {
	query :=
		`SELECT id, name, settings FROM storages
		 WHERE id = ?
		 `

	s, err := scanStorage(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &s, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id uuid.UUID, dto UpdateDTO) (*storage.Storage, error) {

	settings, err := encodeSettings(dto.Settings)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE storages SET name = ?, settings = ?
		 WHERE id = ?
		 RETURNING id, name, settings
		 `

	s, err := scanStorage(r.db.QueryRowContext(ctx, query, dto.Name.String(), settings, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM storages WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
