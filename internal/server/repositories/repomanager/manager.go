// Package repomanager owns the storage handle shared by the repositories
// and runs schema migrations on startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/cuidarmais/registry/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
