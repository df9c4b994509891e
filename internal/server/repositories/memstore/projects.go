package memstore

import (
	"context"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/google/uuid"
)

type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	project.ID = uuid.NewString()
	project.CreatedAt = time.Now().UTC()

	r.store.projects[project.ID] = cloneProject(project)
	r.store.projectOrder = append(r.store.projectOrder, project.ID)

	return project, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	project, ok := r.store.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return cloneProject(project), nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*models.Project
	for _, id := range r.store.projectOrder {
		if p := r.store.projects[id]; p.OwnerID == ownerID {
			result = append(result, cloneProject(p))
		}
	}

	return result, nil
}

func (r *ProjectRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, p := range r.store.projects {
		if p.OwnerID == ownerID {
			n++
		}
	}

	return n, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.projects[project.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	stored.Name = project.Name
	stored.Description = project.Description

	return cloneProject(stored), nil
}

// Delete removes the project and every task referencing it in one critical
// section, so no reader can observe a half-applied cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[id]; !ok {
		return common.ErrorNotFound
	}

	delete(r.store.projects, id)
	r.store.projectOrder = removeID(r.store.projectOrder, id)

	kept := r.store.taskOrder[:0]
	for _, taskID := range r.store.taskOrder {
		if r.store.tasks[taskID].ProjectID == id {
			delete(r.store.tasks, taskID)
			continue
		}
		kept = append(kept, taskID)
	}
	r.store.taskOrder = kept

	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
