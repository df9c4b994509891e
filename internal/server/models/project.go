package models

import "time"

// Project is a container of tasks owned by exactly one user. OwnerID never
// changes after creation. Tasks is populated only on single-project reads.
type Project struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	Tasks       []*Task
}
