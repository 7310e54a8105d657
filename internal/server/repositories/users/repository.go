package users

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/cryptox"
	"github.com/dmitrijs2005/bookshelf/internal/server/users"
	"github.com/google/uuid"
)

type Repository interface {
	// Register inserts the user. An existing row with the same id, role
	// included, is left as it is.
	Register(ctx context.Context, user users.User) error
	// CreateInternal stores an account that signs in with login and password.
	// A taken id or login is a db error.
	CreateInternal(ctx context.Context, user users.InternalUser, hash cryptox.PasswordHash) error
	// CreateExternal stores an account known by its identity provider id.
	CreateExternal(ctx context.Context, user users.ExternalUser) error
	// SetRole returns common.ErrorNotFound when no user has the id.
	SetRole(ctx context.Context, id uuid.UUID, role users.Role) error
	// FindByID returns common.ErrorNotFound when no user has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*users.User, error)
	// FindByLogin returns the user and its password hash, or
	// common.ErrorNotFound when no internal user has the login.
	FindByLogin(ctx context.Context, login users.Login) (*users.User, cryptox.PasswordHash, error)
}
