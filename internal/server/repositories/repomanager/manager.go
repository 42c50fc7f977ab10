package repomanager

import (
	"context"
	"database/sql"

	"github.com/yeabtsegataye/equb-system/internal/dbx"
	"github.com/yeabtsegataye/equb-system/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
