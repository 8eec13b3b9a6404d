package models

import (
	"time"

	"masterylog/internal/validation"
)

// Priority of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is a to-do item
type Task struct {
	ID        int64      `db:"id"`
	Text      string     `db:"task"`
	Completed bool       `db:"completed"`
	Priority  Priority   `db:"priority"`
	Deadline  *time.Time `db:"deadline"`
	CreatedAt time.Time  `db:"created_at"`
}

// Validate fills in the default priority and checks the rest
func (t *Task) Validate() error {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return validation.First(
		validation.Required("task", t.Text),
		validation.OneOf("priority", string(t.Priority), []string{
			string(PriorityHigh), string(PriorityMedium), string(PriorityLow),
		}),
	)
}
