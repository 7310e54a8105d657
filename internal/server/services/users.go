package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/cryptox"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	usersrepo "github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	"github.com/dmitrijs2005/bookshelf/internal/server/users"
	"github.com/google/uuid"
)

// hashPassword is replaced in tests.
var hashPassword = cryptox.HashPassword

// UserSync records users authenticated elsewhere so they can be authorized here.
type UserSync struct {
	repo usersrepo.Repository
	log  logging.Logger
}

func NewUserSync(repo usersrepo.Repository, l logging.Logger) *UserSync {
	return &UserSync{repo: repo, log: l.With("service", "user_sync")}
}

// Sync registers the user with the ordinary role. A user that is already
// known keeps its role.
func (s *UserSync) Sync(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Register(ctx, users.User{ID: id, Role: users.RoleOrdinary}); err != nil {
		s.log.Error(ctx, "sync user", "id", id, "error", err)
		return fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Debug(ctx, "user synced", "id", id)
	return nil
}

type UserCreator struct {
	repo usersrepo.Repository
	log  logging.Logger
}

func NewUserCreator(repo usersrepo.Repository, l logging.Logger) *UserCreator {
	return &UserCreator{repo: repo, log: l.With("service", "user_creator")}
}

// CreateInternal stores a user that signs in with login and password. Only
// an argon2id hash of the password is kept.
func (s *UserCreator) CreateInternal(ctx context.Context, login users.Login, password users.Password, role users.Role) (users.User, error) {
	u := users.NewInternalUser(login, password, role)

	hash, err := hashPassword(password.Reveal())
	if err != nil {
		s.log.Error(ctx, "hash password", "error", err)
		return users.User{}, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.CreateInternal(ctx, u, hash); err != nil {
		s.log.Error(ctx, "create internal user", "login", login.String(), "error", err)
		return users.User{}, fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Info(ctx, "user created", "id", u.ID, "role", role)
	return u.User(), nil
}

func (s *UserCreator) CreateExternal(ctx context.Context, externalID users.ExternalID, role users.Role) (users.User, error) {
	u := users.NewExternalUser(externalID, role)

	if err := s.repo.CreateExternal(ctx, u); err != nil {
		s.log.Error(ctx, "create external user", "external_id", externalID.String(), "error", err)
		return users.User{}, fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Info(ctx, "user created", "id", u.ID, "role", role)
	return u.User(), nil
}

type UserGetter struct {
	repo usersrepo.Repository
	log  logging.Logger
}

func NewUserGetter(repo usersrepo.Repository, l logging.Logger) *UserGetter {
	return &UserGetter{repo: repo, log: l.With("service", "user_getter")}
}

// Get returns ErrNotFound for an unknown id.
func (s *UserGetter) Get(ctx context.Context, id uuid.UUID) (*users.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		s.log.Error(ctx, "get user", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDB, err)
	}
	return u, nil
}

type RoleAssigner struct {
	repo usersrepo.Repository
	log  logging.Logger
}

func NewRoleAssigner(repo usersrepo.Repository, l logging.Logger) *RoleAssigner {
	return &RoleAssigner{repo: repo, log: l.With("service", "role_assigner")}
}

func (s *RoleAssigner) Assign(ctx context.Context, id uuid.UUID, role users.Role) error {
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		s.log.Error(ctx, "assign role", "id", id, "error", err)
		return fmt.Errorf("%w: %w", ErrDB, err)
	}

	s.log.Info(ctx, "role assigned", "id", id, "role", role)
	return nil
}

type Authenticator struct {
	repo usersrepo.Repository
	log  logging.Logger
}

func NewAuthenticator(repo usersrepo.Repository, l logging.Logger) *Authenticator {
	return &Authenticator{repo: repo, log: l.With("service", "authenticator")}
}

// Authenticate checks an internal user's password. An unknown login and a
// wrong password both yield ErrInvalidCredentials.
func (s *Authenticator) Authenticate(ctx context.Context, login users.Login, password string) (*users.User, error) {
	u, hash, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.Error(ctx, "find user by login", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDB, err)
	}

	if !hash.Matches(password) {
		s.log.Warn(ctx, "password mismatch", "id", u.ID)
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
