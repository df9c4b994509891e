package memstore

import (
	"context"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/google/uuid"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	r.store.tasks[task.ID] = cloneTask(task)
	r.store.taskOrder = append(r.store.taskOrder, task.ID)

	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return cloneTask(task), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*models.Task
	for _, id := range r.store.taskOrder {
		if t := r.store.tasks[id]; t.ProjectID == projectID {
			result = append(result, cloneTask(t))
		}
	}

	return result, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[task.ID]; !ok {
		return nil, common.ErrorNotFound
	}

	stored := cloneTask(task)
	r.store.tasks[task.ID] = stored

	return cloneTask(stored), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return common.ErrorNotFound
	}

	delete(r.store.tasks, id)
	r.store.taskOrder = removeID(r.store.taskOrder, id)

	return nil
}
