package task

import "time"

// DisplayDateLayout is the human form of a due date ("Jan 2, 2006").
const DisplayDateLayout = "Jan 2, 2006"

// FormatDate renders a YYYY-MM-DD date with layout, falling back to
// DisplayDateLayout when layout is empty. Unparseable input is returned
// unchanged.
func FormatDate(dueDate, layout string) string {
	if layout == "" {
		layout = DisplayDateLayout
	}
	d, err := time.Parse(DateLayout, dueDate)
	if err != nil {
		return dueDate
	}
	return d.Format(layout)
}

// Today returns the calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
