// Package task defines the to-do item model shared by the store, the
// coordinator and the renderers.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when the user does not pick one.
const DefaultPriority = PriorityMedium

// DateLayout is the layout of Task.DueDate.
const DateLayout = "2006-01-02"

// Priorities returns all valid priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the capitalised display form ("High").
func (p Priority) Label() string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Rank orders priorities for sorting; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority converts user input into a Priority. Matching is
// case-insensitive and surrounding whitespace is ignored.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", invalid("priority", "must be one of low, medium, high")
	}
	return p, nil
}

// Task is a single to-do item. The JSON field names match the layout of
// the persisted blob.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	DueDate   string    `json:"dueDate" yaml:"dueDate"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewID returns a fresh opaque task id.
func NewID() string {
	return uuid.NewString()
}

// New builds a pending task with a generated id and the current time as
// its creation timestamp. The title is trimmed.
func New(title, dueDate string, p Priority) Task {
	if p == "" {
		p = DefaultPriority
	}
	return Task{
		ID:        NewID(),
		Title:     strings.TrimSpace(title),
		DueDate:   strings.TrimSpace(dueDate),
		Priority:  p,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the invariants a task must satisfy before it is
// persisted.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return invalid("id", "must not be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return invalid("title", "must not be empty")
	}
	if !t.Priority.Valid() {
		return invalidValue("priority", string(t.Priority), "must be one of low, medium, high")
	}
	return nil
}

// IsOverdue reports whether the task is still open and its due date lies
// before the calendar day of now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := time.ParseInLocation(DateLayout, t.DueDate, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

// Counts holds the aggregate numbers shown next to the task list.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// CountOf derives Counts from a collection.
func CountOf(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
