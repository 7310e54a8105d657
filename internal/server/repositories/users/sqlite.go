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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Register(ctx context.Context, user users.User) error {

	query := `INSERT INTO users (id, role) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, user.ID.String(), user.Role.String()); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) CreateInternal(ctx context.Context, user users.InternalUser, hash cryptox.PasswordHash) error {

	query := `INSERT INTO users (id, role, login, password_salt, password_key) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID.String(), user.Role.String(), user.Login.String(), hash.Salt, hash.Key)
	if err != nil {
		return fmt.Errorf("failed to create internal user: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) CreateExternal(ctx context.Context, user users.ExternalUser) error {

	query := `INSERT INTO users (id, role, external_id) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID.String(), user.Role.String(), user.ExternalID.String())
	if err != nil {
		return fmt.Errorf("failed to create external user: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) SetRole(ctx context.Context, id uuid.UUID, role users.Role) error {

	query := `update users set role=? where id=?`

	res, err := r.db.ExecContext(ctx, query, role.String(), id.String())
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*users.User, error) {

	query := `select id, role from users where id=?`

	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&user.ID, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) FindByLogin(ctx context.Context, login users.Login) (*users.User, cryptox.PasswordHash, error) {

	query := `select id, role, password_salt, password_key from users where login=?`

	user := &users.User{}
	var hash cryptox.PasswordHash
	err := r.db.QueryRowContext(ctx, query, login.String()).Scan(&user.ID, &user.Role, &hash.Salt, &hash.Key)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cryptox.PasswordHash{}, common.ErrorNotFound
		}
		return nil, cryptox.PasswordHash{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, hash, nil
}
