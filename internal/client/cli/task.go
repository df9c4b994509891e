package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/progresspilot/internal/client/api"
)

// ListTasks prints the tasks of a project. The first extra argument is taken
// as a status filter, the second as a search string.
func (a *App) ListTasks(ctx context.Context, projectID string, filters []string) error {
	status, search := "", ""
	if len(filters) > 0 {
		status = filters[0]
	}
	if len(filters) > 1 {
		search = filters[1]
	}

	tasks, err := a.client.ListTasks(ctx, projectID, status, search)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if len(tasks) == 0 {
		printlnFn("No tasks match.")
		return nil
	}

	for _, t := range tasks {
		printlnFn(formatTask(&t))
	}
	return nil
}

func (a *App) AddTask(ctx context.Context, projectID string) error {
	title, err := GetSimpleText(a.reader, "Task title", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	task, err := a.client.CreateTask(ctx, projectID, title, description)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Created task", task.ID)
	return nil
}

func (a *App) ShowTask(ctx context.Context, id string) error {
	task, err := a.client.GetTask(ctx, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn(formatTask(task))
	if task.Description != "" {
		printlnFn("  " + task.Description)
	}
	printlnFn("  created " + task.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// EditTask prompts for a new title and description. An empty answer keeps
// the current value.
func (a *App) EditTask(ctx context.Context, id string) error {
	title, err := GetSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	description, err := GetSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	var upd api.TaskUpdate
	if title != "" {
		upd.Title = &title
	}
	if description != "" {
		upd.Description = &description
	}
	if upd.Title == nil && upd.Description == nil {
		printlnFn("Nothing to change")
		return nil
	}

	task, err := a.client.UpdateTask(ctx, id, upd)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Updated:", formatTask(task))
	return nil
}

func (a *App) SetTaskStatus(ctx context.Context, id, status string) error {
	task, err := a.client.UpdateTask(ctx, id, api.TaskUpdate{Status: &status})
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Updated:", formatTask(task))
	return nil
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	if err := a.client.DeleteTask(ctx, id); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Deleted task", id)
	return nil
}

func formatTask(t *api.Task) string {
	s := fmt.Sprintf("[%s] %-12s %s", t.ID, t.Status, t.Title)
	if t.CompletedAt != nil {
		s += fmt.Sprintf(" (completed %s)", t.CompletedAt.Format("2006-01-02 15:04"))
	}
	return s
}
