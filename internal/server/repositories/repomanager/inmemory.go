package repomanager

import (
	"context"
	"database/sql"

	"github.com/yeabtsegataye/equb-system/internal/dbx"
	"github.com/yeabtsegataye/equb-system/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves a single process-local users repository.
// The DBTX argument is ignored.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
