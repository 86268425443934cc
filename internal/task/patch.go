package task

import "strings"

// Patch is a shallow partial update. Nil fields keep the existing value.
// ID and CreatedAt have no field here because they never change.
type Patch struct {
	Title     *string
	DueDate   *string
	Priority  *Priority
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.DueDate == nil && p.Priority == nil && p.Completed == nil
}

// Apply returns a copy of t with the supplied fields overwritten.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.DueDate != nil {
		t.DueDate = strings.TrimSpace(*p.DueDate)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// SetTitle returns a patch that only changes the title.
func SetTitle(title string) Patch {
	return Patch{Title: &title}
}

// SetDueDate returns a patch that only changes the due date.
func SetDueDate(date string) Patch {
	return Patch{DueDate: &date}
}

// SetPriority returns a patch that only changes the priority.
func SetPriority(p Priority) Patch {
	return Patch{Priority: &p}
}

// SetCompleted returns a patch that only changes the completion flag.
func SetCompleted(done bool) Patch {
	return Patch{Completed: &done}
}
