package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/dbx"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/repomanager"
)

// TaskUpdate carries the optional fields of a task update. Nil fields are
// left unchanged. The completion timestamp is intentionally absent: it is
// derived from status transitions and cannot be set by callers.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// TaskService implements task lifecycle rules: tasks start in todo, the
// completion timestamp follows status transitions, and every task belongs to
// an existing project.
type TaskService struct {
	repomanager repomanager.RepositoryManager
}

func NewTaskService(m repomanager.RepositoryManager) *TaskService {
	return &TaskService{repomanager: m}
}

// Create stores a new task under projectID with status todo and no
// completion timestamp. The title is trimmed and must be non-empty; the
// project must exist.
func (s *TaskService) Create(ctx context.Context, projectID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      models.TaskStatusTodo,
	}

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Projects(tx).GetByID(ctx, projectID); err != nil {
			return err
		}

		var err error
		task, err = s.repomanager.Tasks(tx).Create(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the project's tasks in insertion order, narrowed by the
// status filter and search text (see FilterTasks).
func (s *TaskService) List(ctx context.Context, projectID, statusFilter, searchText string) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(nil).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return FilterTasks(tasks, statusFilter, searchText), nil
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.repomanager.Tasks(nil).GetByID(ctx, id)
}

// Update applies the non-nil fields of upd and then the completion
// timestamp rule:
//
//   - moving into completed stamps the current time;
//   - moving out of completed clears the timestamp;
//   - any other transition leaves it untouched.
func (s *TaskService) Update(ctx context.Context, id string, upd TaskUpdate) (*models.Task, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, common.ErrorValidation
	}

	var task *models.Task

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		var err error
		task, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Title != nil {
			title := strings.TrimSpace(*upd.Title)
			if title == "" {
				return common.ErrorValidation
			}
			task.Title = title
		}
		if upd.Description != nil {
			task.Description = *upd.Description
		}

		if upd.Status != nil {
			previous := task.Status
			task.Status = *upd.Status

			switch {
			case task.Status == models.TaskStatusCompleted && previous != models.TaskStatusCompleted:
				now := time.Now().UTC()
				task.CompletedAt = &now
			case previous == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted:
				task.CompletedAt = nil
			}
		}

		task, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Tasks(tx).Delete(ctx, id)
	})
}
