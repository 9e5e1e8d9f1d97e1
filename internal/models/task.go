package model

import (
	"time"

	"flowstate.app/flowstate-api/internal/constants"
)

// Task is the single persisted entity. Field names match the JSON wire
// format the frontend consumes; DueDate is kept verbatim as entered, no
// timezone normalization is applied.
type Task struct {
	ID            int                    `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category"`
	Priority      constants.TaskPriority `json:"priority"`
	DueDate       string                 `json:"dueDate"`
	EstimatedTime string                 `json:"estimatedTime"`
	AssignedTo    string                 `json:"assignedTo"`
	Tags          string                 `json:"tags"`
	Status        constants.TaskStatus   `json:"status"`
	Completed     bool                   `json:"completed"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// DueBefore reports whether the task's due date falls strictly before t.
// Due dates arrive from the form as local date-time strings without a
// zone; a value that matches none of the accepted layouts is never due.
func (task Task) DueBefore(t time.Time) bool {
	layouts := []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		due, err := time.ParseInLocation(layout, task.DueDate, time.Local)
		if err == nil {
			return due.Before(t)
		}
	}
	return false
}
