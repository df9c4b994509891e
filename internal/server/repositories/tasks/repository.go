// Package tasks defines the task repository contract and its PostgreSQL
// implementation.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/progresspilot/internal/server/models"
)

// Repository stores tasks. ListByProject returns tasks in insertion order.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
