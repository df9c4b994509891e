package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/repomanager"
)

func statusptr(s models.TaskStatus) *models.TaskStatus { return &s }

func newTaskFixture(t *testing.T) (*TaskService, string) {
	t.Helper()
	m := repomanager.NewMemoryManager()
	ps := NewProjectService(m)
	ts := NewTaskService(m)

	project, err := ps.Create(context.Background(), "owner-1", "Fixture", "")
	if err != nil {
		t.Fatalf("project Create error: %v", err)
	}
	return ts, project.ID
}

func TestTaskService_Create_Defaults(t *testing.T) {
	ts, projectID := newTaskFixture(t)

	task, err := ts.Create(context.Background(), projectID, "  Write docs  ", "desc")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if task.Title != "Write docs" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != models.TaskStatusTodo {
		t.Fatalf("new task must start in todo, got %q", task.Status)
	}
	if task.CompletedAt != nil {
		t.Fatal("new task must have no completion timestamp")
	}
	if task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("expected assigned id and creation timestamp: %+v", task)
	}
}

func TestTaskService_Create_MissingProject(t *testing.T) {
	ts, _ := newTaskFixture(t)

	if _, err := ts.Create(context.Background(), "missing", "title", ""); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestTaskService_Create_EmptyTitleFails(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	if _, err := ts.Create(ctx, projectID, "   ", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}

	list, err := ts.List(ctx, projectID, "", "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected create must not store a task, got %d", len(list))
	}
}

func TestTaskService_Update_CompletionTimestampRule(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	task, err := ts.Create(ctx, projectID, "lifecycle", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// todo -> in-progress: timestamp stays nil
	task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(models.TaskStatusInProgress)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("in-progress task must have no completion timestamp")
	}

	// in-progress -> review: neither endpoint is completed, still nil
	task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(models.TaskStatusReview)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("review task must have no completion timestamp")
	}

	// review -> completed: timestamp is set
	task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(models.TaskStatusCompleted)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("completed task must carry a completion timestamp")
	}
	completedAt := *task.CompletedAt

	// completed -> completed: timestamp unchanged
	task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(models.TaskStatusCompleted)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(completedAt) {
		t.Fatalf("re-completing must not move the timestamp: %v vs %v", task.CompletedAt, completedAt)
	}

	// completed -> in-progress: timestamp cleared
	task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(models.TaskStatusInProgress)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("reopened task must lose its completion timestamp")
	}
}

func TestTaskService_Update_InvariantHolds(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	task, err := ts.Create(ctx, projectID, "invariant", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	statuses := []models.TaskStatus{
		models.TaskStatusCompleted,
		models.TaskStatusReview,
		models.TaskStatusCompleted,
		models.TaskStatusTodo,
		models.TaskStatusInProgress,
	}
	for _, status := range statuses {
		task, err = ts.Update(ctx, task.ID, TaskUpdate{Status: statusptr(status)})
		if err != nil {
			t.Fatalf("Update to %s error: %v", status, err)
		}
		completed := task.Status == models.TaskStatusCompleted
		if completed != (task.CompletedAt != nil) {
			t.Fatalf("invariant broken after move to %s: status=%s completedAt=%v", status, task.Status, task.CompletedAt)
		}
	}
}

func TestTaskService_Update_FieldsAndErrors(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	task, err := ts.Create(ctx, projectID, "original", "original desc")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := ts.Update(ctx, task.ID, TaskUpdate{Title: strptr("  renamed "), Description: strptr("new desc")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "renamed" || updated.Description != "new desc" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Status != models.TaskStatusTodo {
		t.Fatalf("status must stay untouched, got %q", updated.Status)
	}

	if _, err := ts.Update(ctx, task.ID, TaskUpdate{Title: strptr("   ")}); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation for blank title, got %v", err)
	}

	bogus := models.TaskStatus("cancelled")
	if _, err := ts.Update(ctx, task.ID, TaskUpdate{Status: &bogus}); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation for unknown status, got %v", err)
	}

	if _, err := ts.Update(ctx, "missing", TaskUpdate{Title: strptr("x")}); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestTaskService_List_FiltersServerSide(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	report, err := ts.Create(ctx, projectID, "Report bug", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := ts.Create(ctx, projectID, "Ship release", ""); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err = ts.Update(ctx, report.ID, TaskUpdate{Status: statusptr(models.TaskStatusCompleted)}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	completed, err := ts.List(ctx, projectID, "completed", "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != report.ID {
		t.Fatalf("status filter failed: %+v", completed)
	}

	found, err := ts.List(ctx, projectID, "all", "report")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(found) != 1 || found[0].ID != report.ID {
		t.Fatalf("search filter failed: %+v", found)
	}
}

func TestTaskService_Delete(t *testing.T) {
	ts, projectID := newTaskFixture(t)
	ctx := context.Background()

	task, err := ts.Create(ctx, projectID, "to delete", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := ts.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := ts.Get(ctx, task.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("deleted task still readable: %v", err)
	}
	if err := ts.Delete(ctx, task.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound on double delete, got %v", err)
	}
}
