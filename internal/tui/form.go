package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/taskmgr/internal/app"
	"github.com/Iron-Ham/taskmgr/internal/task"
)

const (
	fieldTitle = iota
	fieldDue
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Due", "Priority"}

// form is the add/edit form. It holds one text input per field.
type form struct {
	editID string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newForm(defaultPriority task.Priority, width int) form {
	var f form

	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200
	title.Width = width

	due := textinput.New()
	due.Placeholder = task.DateLayout
	due.CharLimit = len(task.DateLayout)
	due.Width = len(task.DateLayout) + 1

	prio := textinput.New()
	prio.Placeholder = string(defaultPriority)
	prio.CharLimit = 6
	prio.Width = 8

	f.inputs = [fieldCount]textinput.Model{title, due, prio}
	return f
}

// open resets the form to af and focuses the title.
func (f *form) open(af app.Form) tea.Cmd {
	f.editID = af.EditID
	f.inputs[fieldTitle].SetValue(af.Title)
	f.inputs[fieldDue].SetValue(af.DueDate)
	f.inputs[fieldPriority].SetValue(af.Priority)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	return f.focusField(fieldTitle)
}

func (f *form) reset() {
	f.editID = ""
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = fieldTitle
}

func (f form) value() app.Form {
	return app.Form{
		EditID:   f.editID,
		Title:    f.inputs[fieldTitle].Value(),
		DueDate:  f.inputs[fieldDue].Value(),
		Priority: f.inputs[fieldPriority].Value(),
	}
}

func (f form) editing() bool {
	return f.editID != ""
}

func (f *form) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j != f.focus {
			f.inputs[j].Blur()
		}
	}
	return f.inputs[f.focus].Focus()
}

func (f *form) next() tea.Cmd { return f.focusField(f.focus + 1) }

func (f *form) prev() tea.Cmd { return f.focusField(f.focus - 1) }

// cyclePriority steps the priority field through the known priorities.
func (f *form) cyclePriority() {
	cur := task.Priority(f.inputs[fieldPriority].Value())
	all := task.Priorities()
	next := all[0]
	for i, p := range all {
		if p == cur {
			next = all[(i+1)%len(all)]
			break
		}
	}
	f.inputs[fieldPriority].SetValue(string(next))
	f.inputs[fieldPriority].CursorEnd()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}
