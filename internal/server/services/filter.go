package services

import (
	"strings"

	"github.com/dmitrijs2005/progresspilot/internal/server/models"
)

// StatusFilterAll passes every task regardless of status, as does an empty
// filter.
const StatusFilterAll = "all"

// FilterTasks narrows tasks to those matching both the status filter and the
// search text, preserving input order.
//
// The search text is trimmed and case-folded; a task matches when its title
// or description contains it as a substring. Empty search text matches
// everything.
func FilterTasks(tasks []*models.Task, statusFilter, searchText string) []*models.Task {
	searchText = strings.ToLower(strings.TrimSpace(searchText))

	var result []*models.Task
	for _, task := range tasks {
		if statusFilter != "" && statusFilter != StatusFilterAll && string(task.Status) != statusFilter {
			continue
		}
		if searchText != "" &&
			!strings.Contains(strings.ToLower(task.Title), searchText) &&
			!strings.Contains(strings.ToLower(task.Description), searchText) {
			continue
		}
		result = append(result, task)
	}

	return result
}
