package repomanager

import (
	"context"
	"database/sql"

	"github.com/ipeonte/usernotes/internal/dbx"
	"github.com/ipeonte/usernotes/internal/server/repositories/notes"
	"github.com/ipeonte/usernotes/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX handle, so services
// can run repository calls either directly against the pool or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
