// Package memstore implements the user, project, and task repositories on a
// shared in-process store. One mutex guards the whole store, so every
// repository operation is atomic with respect to every other, including the
// project delete cascade.
package memstore

import (
	"sync"

	"github.com/dmitrijs2005/progresspilot/internal/server/models"
)

// Store is the backing state shared by the memory repositories. Insertion
// order of projects and tasks is tracked explicitly so listings are stable.
type Store struct {
	mu sync.RWMutex

	// txMu serializes multi-step flows run through the repository manager's
	// WithinTx, so a read-modify-write cannot interleave with another one.
	txMu sync.Mutex

	users        map[string]*models.User
	emails       map[string]string
	projects     map[string]*models.Project
	projectOrder []string
	tasks        map[string]*models.Task
	taskOrder    []string
}

func New() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		emails:   make(map[string]string),
		projects: make(map[string]*models.Project),
		tasks:    make(map[string]*models.Task),
	}
}

// LockTx acquires the transaction mutex. Callers must pair it with UnlockTx.
func (s *Store) LockTx()   { s.txMu.Lock() }
func (s *Store) UnlockTx() { s.txMu.Unlock() }

// Entities are copied on the way in and out so callers can mutate what they
// hold without touching stored state until an explicit Update.

func cloneUser(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func cloneProject(p *models.Project) *models.Project {
	c := *p
	c.Tasks = nil
	return &c
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		c.CompletedAt = &completed
	}
	return &c
}
