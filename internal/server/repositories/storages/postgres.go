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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, dto InsertDTO) error {

	settings, err := encodeSettings(dto.Settings)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO storages (id, name, settings)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, dto.ID, dto.Name, settings); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, from *uuid.UUID) (pagination.Page[storage.Storage], error) {

	var (
		rows *sql.Rows
		err  error
	)

	if from == nil {
		query :=
			`SELECT id, name, settings FROM storages
			 ORDER BY id
			 LIMIT $1
			 `
		rows, err = r.db.QueryContext(ctx, query, pagination.Limit)
	} else {
		query :=
			`SELECT id, name, settings FROM storages
			 WHERE id > $1
			 ORDER BY id
			 LIMIT $2
			 `
		rows, err = r.db.QueryContext(ctx, query, *from, pagination.Limit)
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

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*storage.Storage, error) {
	query :=
		`SELECT id, name, settings FROM storages
		 WHERE id = $1
		 `

	s, err := scanStorage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, dto UpdateDTO) (*storage.Storage, error) {

	settings, err := encodeSettings(dto.Settings)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE storages SET name = $2, settings = $3
		 WHERE id = $1
		 RETURNING id, name, settings
		 `

	s, err := scanStorage(r.db.QueryRowContext(ctx, query, id, dto.Name, settings))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM storages WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
