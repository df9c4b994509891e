package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/progresspilot/internal/client/api"
)

func (a *App) ListProjects(ctx context.Context) error {
	projects, err := a.client.ListProjects(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if len(projects) == 0 {
		printlnFn("No projects yet. Use 'add' to create one.")
		return nil
	}

	for _, p := range projects {
		printlnFn(formatProject(&p))
	}
	return nil
}

func (a *App) AddProject(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Project name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	project, err := a.client.CreateProject(ctx, name, description)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Created project", project.ID)
	return nil
}

func (a *App) ShowProject(ctx context.Context, id string) error {
	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn(formatProject(project))
	if len(project.Tasks) == 0 {
		printlnFn("  (no tasks)")
		return nil
	}
	for _, t := range project.Tasks {
		printlnFn("  " + formatTask(&t))
	}
	return nil
}

// EditProject prompts for a new name and description. An empty answer keeps
// the current value.
func (a *App) EditProject(ctx context.Context, id string) error {
	name, err := GetSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	description, err := GetSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	var upd api.ProjectUpdate
	if name != "" {
		upd.Name = &name
	}
	if description != "" {
		upd.Description = &description
	}
	if upd.Name == nil && upd.Description == nil {
		printlnFn("Nothing to change")
		return nil
	}

	project, err := a.client.UpdateProject(ctx, id, upd)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Updated:", formatProject(project))
	return nil
}

func (a *App) DeleteProject(ctx context.Context, id string) error {
	if err := a.client.DeleteProject(ctx, id); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Deleted project", id)
	return nil
}

func formatProject(p *api.Project) string {
	s := fmt.Sprintf("[%s] %s", p.ID, p.Name)
	if p.Description != "" {
		s += " - " + p.Description
	}
	return s
}
