package task

import (
	"strings"
	"time"

	"github.com/Iron-Ham/taskmgr/internal/errors"
)

func invalid(field, message string) error {
	return errors.NewValidationError(message).WithField(field)
}

func invalidValue(field, value, message string) error {
	return errors.NewValidationError(message).WithField(field).WithValue(value)
}

// ValidateInput checks the fields of the add/edit form: the title must
// not be blank and the due date must be present in YYYY-MM-DD form.
func ValidateInput(title, dueDate string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "must not be empty")
	}
	dueDate = strings.TrimSpace(dueDate)
	if dueDate == "" {
		return invalid("dueDate", "is required")
	}
	if _, err := time.Parse(DateLayout, dueDate); err != nil {
		return errors.NewValidationError("must be YYYY-MM-DD").
			WithField("dueDate").
			WithValue(dueDate)
	}
	return nil
}
