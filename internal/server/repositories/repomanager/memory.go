package repomanager

import (
	"context"

	"github.com/dmitrijs2005/progresspilot/internal/dbx"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/projects"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/users"
)

// MemoryManager keeps all state in process memory. It is the default backend
// and the one tests run against.
type MemoryManager struct {
	store *memstore.Store
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{store: memstore.New()}
}

func (m *MemoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.store.LockTx()
	defer m.store.UnlockTx()
	return fn(ctx, nil)
}

func (m *MemoryManager) Users(dbx.DBTX) users.Repository {
	return memstore.NewUserRepository(m.store)
}

func (m *MemoryManager) Projects(dbx.DBTX) projects.Repository {
	return memstore.NewProjectRepository(m.store)
}

func (m *MemoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return memstore.NewTaskRepository(m.store)
}
