package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/migrations"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/storages"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager backs a single-node deployment with an embedded database.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Storages(db dbx.DBTX) storages.Repository {
	return storages.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
