// Package projects defines the project repository contract and its PostgreSQL
// implementation.
package projects

import (
	"context"

	"github.com/dmitrijs2005/progresspilot/internal/server/models"
)

// Repository stores projects. ListByOwner returns projects in insertion
// order. Delete removes the project together with every task that references
// it, atomically.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
