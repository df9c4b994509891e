package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/dbx"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/repomanager"
)

// MaxProjectsPerOwner caps how many projects one user may own.
const MaxProjectsPerOwner = 4

// ProjectUpdate carries the optional fields of a project update. Nil fields
// are left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectService implements project lifecycle rules: the per-owner cap,
// name validation, and the atomic task cascade on delete.
type ProjectService struct {
	repomanager repomanager.RepositoryManager
}

func NewProjectService(m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{repomanager: m}
}

// Create stores a new project for ownerID. The name is trimmed and must be
// non-empty; the owner must hold fewer than MaxProjectsPerOwner projects.
func (s *ProjectService) Create(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	project := &models.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		count, err := repo.CountByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if count >= MaxProjectsPerOwner {
			return common.ErrorLimitExceeded
		}

		project, err = repo.Create(ctx, project)
		return err
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// List returns the owner's projects in insertion order, without tasks.
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]*models.Project, error) {
	return s.repomanager.Projects(nil).ListByOwner(ctx, ownerID)
}

// Get returns the project with its tasks populated. Project and tasks are
// read in one atomic step so a concurrent cascade delete cannot produce a
// half-consistent view.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	var project *models.Project

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		project, err = s.repomanager.Projects(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}

		project.Tasks, err = s.repomanager.Tasks(tx).ListByProject(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Update applies the non-nil fields of upd. A provided name is trimmed and
// must be non-empty.
func (s *ProjectService) Update(ctx context.Context, id string, upd ProjectUpdate) (*models.Project, error) {
	var project *models.Project

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		var err error
		project, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return common.ErrorValidation
			}
			project.Name = name
		}
		if upd.Description != nil {
			project.Description = *upd.Description
		}

		project, err = repo.Update(ctx, project)
		return err
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes the project and all of its tasks.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Projects(tx).Delete(ctx, id)
	})
}
