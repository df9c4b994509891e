// Package repomanager wires repository implementations to their backing
// store and exposes them behind one interface, so services do not care
// whether they run against PostgreSQL or the in-process store.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/progresspilot/internal/dbx"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/projects"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a database handle.
// Passing nil binds the repository to the manager's default handle.
//
// WithinTx runs fn atomically: the PostgreSQL manager opens a real
// transaction and passes its handle to fn; the memory manager serializes fn
// against every other WithinTx call and passes nil. Multi-step service flows
// (cap check + insert, read-modify-write, project get with tasks) must go
// through it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
