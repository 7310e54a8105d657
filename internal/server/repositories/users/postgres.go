// Package users persists authorization records for storage managers.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/cryptox"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/users"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Register(ctx context.Context, user users.User) error {

	query :=
		`INSERT INTO users (id, role)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Role); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) CreateInternal(ctx context.Context, user users.InternalUser, hash cryptox.PasswordHash) error {

	query :=
		`INSERT INTO users (id, role, login, password_salt, password_key)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Role, user.Login.String(), hash.Salt, hash.Key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) CreateExternal(ctx context.Context, user users.ExternalUser) error {

	query :=
		`INSERT INTO users (id, role, external_id)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Role, user.ExternalID.String()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetRole(ctx context.Context, id uuid.UUID, role users.Role) error {

	query :=
		`UPDATE users SET role = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	query :=
		`SELECT id, role FROM users
		 WHERE id = $1
		 `

	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByLogin(ctx context.Context, login users.Login) (*users.User, cryptox.PasswordHash, error) {
	query :=
		`SELECT id, role, password_salt, password_key FROM users
		 WHERE login = $1
		 `

	user := &users.User{}
	var hash cryptox.PasswordHash
	err := r.db.QueryRowContext(ctx, query, login.String()).Scan(&user.ID, &user.Role, &hash.Salt, &hash.Key)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cryptox.PasswordHash{}, common.ErrorNotFound
		}
		return nil, cryptox.PasswordHash{}, fmt.Errorf("db error: %w", err)
	}

	return user, hash, nil
}
