package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/messenger/internal/dbx"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/follows"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/users"
)

// RepositoryManager vends repository instances bound to a DBTX (either the
// pooled *sql.DB or an open *sql.Tx) and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Follows(db dbx.DBTX) follows.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
