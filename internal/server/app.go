// Package server wires the storage catalog together: configuration, logging,
// database, migrations, repositories and services.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
)

// Services groups every operation the catalog exposes.
type Services struct {
	Creator      *services.Creator
	Lister       *services.Lister
	Getter       *services.Getter
	Updater      *services.Updater
	Deleter      *services.Deleter
	FileUploader *services.FileUploader
	FileDeleter  *services.FileDeleter
	UserSync     *services.UserSync

	UserCreator   *services.UserCreator
	UserGetter    *services.UserGetter
	RoleAssigner  *services.RoleAssigner
	Authenticator *services.Authenticator
}

type App struct {
	logger   logging.Logger
	db       *sql.DB
	Services Services
}

// NewApp opens the database, applies migrations when configured and builds
// the services. Logs go to logOut.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger := logging.New(logOut, c.LogLevel, c.LogFormat)

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		logger.Debug(ctx, "migrations applied", "driver", c.DatabaseDriver)
	}

	storagesRepo := rm.Storages(db)
	usersRepo := rm.Users(db)

	app := &App{
		logger: logger,
		db:     db,
		Services: Services{
			Creator:      services.NewCreator(storagesRepo, logger),
			Lister:       services.NewLister(storagesRepo, logger),
			Getter:       services.NewGetter(storagesRepo, logger),
			Updater:      services.NewUpdater(storagesRepo, logger),
			Deleter:      services.NewDeleter(storagesRepo, logger),
			FileUploader: services.NewFileUploader(storagesRepo, logger),
			FileDeleter:  services.NewFileDeleter(storagesRepo, logger),
			UserSync:     services.NewUserSync(usersRepo, logger),

			UserCreator:   services.NewUserCreator(usersRepo, logger),
			UserGetter:    services.NewUserGetter(usersRepo, logger),
			RoleAssigner:  services.NewRoleAssigner(usersRepo, logger),
			Authenticator: services.NewAuthenticator(usersRepo, logger),
		},
	}

	return app, nil
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

func (app *App) Close() error {
	return app.db.Close()
}
