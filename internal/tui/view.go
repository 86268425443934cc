package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/util"
)

const dueWidth = 14

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.screen.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Task Manager"))
	b.WriteString("  ")
	b.WriteString(s.Subtitle.Render(string(m.screen.theme) + " theme"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
	default:
		b.WriteString(m.renderList())
	}
	b.WriteString("\n")

	switch {
	case m.screen.err != "":
		b.WriteString(s.Error.Render(m.screen.err))
		b.WriteString(" ")
		b.WriteString(s.Muted.Render("(press any key)"))
	case m.mode == modeConfirmDelete:
		b.WriteString(s.Warning.Render(fmt.Sprintf("Delete %q? (y/N)", m.pendingTitle())))
	case m.mode == modeConfirmClear:
		b.WriteString(s.Warning.Render(fmt.Sprintf("Delete all %d tasks? (y/N)", m.screen.counts.Total)))
	default:
		c := m.screen.counts
		b.WriteString(s.StatsBar.Render(fmt.Sprintf("%d total · %d pending · %d completed", c.Total, c.Pending, c.Completed)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderTabs() string {
	s := m.screen.styles
	tabs := make([]string, 0, 3)
	for i, f := range task.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.screen.filter {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderList() string {
	s := m.screen.styles
	tasks := m.screen.tasks

	if len(tasks) == 0 {
		if m.screen.filter == task.FilterAll {
			return s.Muted.Render("No tasks yet. Press a to add one.") + "\n"
		}
		return s.Muted.Render(fmt.Sprintf("No %s tasks.", m.screen.filter)) + "\n"
	}

	start, end := m.visibleRange(len(tasks))
	now := m.now()

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(tasks[i], i == m.cursor, now))
		b.WriteString("\n")
	}
	if end-start < len(tasks) {
		b.WriteString(s.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(tasks))))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRange keeps the cursor on screen when the list is taller than
// the window.
func (m Model) visibleRange(n int) (int, int) {
	rows := m.height - 9
	if m.height == 0 || rows >= n {
		return 0, n
	}
	if rows < 1 {
		rows = 1
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func (m Model) renderRow(t task.Task, selected bool, now time.Time) string {
	s := m.screen.styles

	pointer := "  "
	if selected {
		pointer = s.Selected.Render(">") + " "
	}

	check := "[ ]"
	titleStyle := s.Row
	if t.Completed {
		check = s.Success.Render("[x]")
		titleStyle = s.Completed
	}
	if selected && !t.Completed {
		titleStyle = s.Selected
	}

	title := util.PadRight(util.TruncateString(util.SingleLine(t.Title), m.titleWidth), m.titleWidth)
	due := util.PadRight(task.FormatDate(t.DueDate, m.dateLayout), dueWidth)
	if t.IsOverdue(now) {
		due = s.Overdue.Render(due)
	}

	return pointer + check + " " + titleStyle.Render(title) + " " + due + " " + s.PriorityBadge(t.Priority)
}

func (m Model) renderForm() string {
	s := m.screen.styles

	heading := "New task"
	if m.form.editing() {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(s.FormLabel.Render(heading))
	b.WriteString("\n\n")
	for i, in := range m.form.inputs {
		b.WriteString(s.FormLabel.Render(util.PadRight(fieldLabels[i], 9)))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return s.FormBox.Render(b.String()) + "\n"
}

func (m Model) pendingTitle() string {
	for _, t := range m.screen.tasks {
		if t.ID == m.pendingID {
			return util.TruncateString(util.SingleLine(t.Title), 40)
		}
	}
	return m.pendingID
}

func (m Model) renderHelp() string {
	s := m.screen.styles

	var pairs [][2]string
	switch {
	case m.mode == modeForm:
		pairs = [][2]string{{"tab", "next field"}, {"ctrl+p", "priority"}, {"enter", "save"}, {"esc", "cancel"}}
	case m.mode != modeList:
		pairs = [][2]string{{"y", "confirm"}, {"any", "cancel"}}
	case m.showHelp:
		pairs = [][2]string{
			{"a", "add"}, {"e", "edit"}, {"space", "toggle"}, {"d", "delete"},
			{"tab/1-3", "filter"}, {"j/k", "move"}, {"t", "theme"}, {"C", "clear all"},
			{"r", "reload"}, {"?", "less"}, {"q", "quit"},
		}
	default:
		pairs = [][2]string{{"a", "add"}, {"space", "toggle"}, {"d", "delete"}, {"?", "more"}, {"q", "quit"}}
	}

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = s.Help(p[0], p[1])
	}
	return strings.Join(parts, "  ")
}
