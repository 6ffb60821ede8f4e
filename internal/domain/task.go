package domain

import "time"

// Task represents a to-do item in the domain model.
// Optional fields are pointers; nil means the value was never set.
type Task struct {
	ID        string     `json:"id"`
	TaskName  string     `json:"task_name"`
	Number    *int       `json:"number,omitempty"`
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

// NewTask creates a new Task with the given id and name, started at the given time.
// Number, DateEnd and IsActive are left unset.
func NewTask(id, name string, startedAt time.Time) Task {
	return Task{
		ID:        id,
		TaskName:  name,
		DateStart: &startedAt,
	}
}
