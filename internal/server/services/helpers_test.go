package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/cryptox"
	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/storages"
	usersrepo "github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/dmitrijs2005/bookshelf/internal/server/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newRepos(t *testing.T) (storages.Repository, usersrepo.Repository) {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.Open(ctx, repomanager.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(ctx, db))

	return m.Storages(db), m.Users(db)
}

func mustName(t *testing.T, raw string) storage.Name {
	t.Helper()
	n, err := storage.NewName(raw)
	require.NoError(t, err)
	return n
}

var errBackend = errors.New("backend down")

// failingRepo fails every call with errBackend.
type failingRepo struct{}

func (failingRepo) Insert(context.Context, storages.InsertDTO) error { return errBackend }
func (failingRepo) List(context.Context, *uuid.UUID) (pagination.Page[storage.Storage], error) {
	return pagination.Page[storage.Storage]{}, errBackend
}
func (failingRepo) Get(context.Context, uuid.UUID) (*storage.Storage, error) { return nil, errBackend }
func (failingRepo) Update(context.Context, uuid.UUID, storages.UpdateDTO) (*storage.Storage, error) {
	return nil, errBackend
}
func (failingRepo) Delete(context.Context, uuid.UUID) error { return errBackend }

type failingUsers struct{}

func (failingUsers) Register(context.Context, users.User) error { return errBackend }
func (failingUsers) CreateInternal(context.Context, users.InternalUser, cryptox.PasswordHash) error {
	return errBackend
}
func (failingUsers) CreateExternal(context.Context, users.ExternalUser) error { return errBackend }
func (failingUsers) SetRole(context.Context, uuid.UUID, users.Role) error { return errBackend }
func (failingUsers) FindByID(context.Context, uuid.UUID) (*users.User, error) {
	return nil, errBackend
}
func (failingUsers) FindByLogin(context.Context, users.Login) (*users.User, cryptox.PasswordHash, error) {
	return nil, cryptox.PasswordHash{}, errBackend
}
