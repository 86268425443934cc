// Package render draws coordinator output for the command line.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
	"github.com/Iron-Ham/taskmgr/internal/tui/styles"
	"github.com/Iron-Ham/taskmgr/internal/util"
)

// IDWidth is how many characters of a task id the table shows. Commands
// accept any unique prefix.
const IDWidth = 8

// Text renders tasks as a plain table on an io.Writer. Errors go to a
// separate writer so they can be sent to stderr. Color is used only when
// the writer is a terminal that supports it.
type Text struct {
	out, errOut io.Writer
	renderer    *lipgloss.Renderer
	styles      *styles.Styles

	titleWidth int
	dateLayout string
	now        func() time.Time

	// Quiet suppresses task and stats output; errors are still written.
	Quiet bool
}

// Option configures a Text renderer.
type Option func(*Text)

// WithTitleWidth sets the column width for titles.
func WithTitleWidth(n int) Option {
	return func(t *Text) {
		if n > 0 {
			t.titleWidth = n
		}
	}
}

// WithDateLayout sets the time layout for due dates.
func WithDateLayout(layout string) Option {
	return func(t *Text) {
		if layout != "" {
			t.dateLayout = layout
		}
	}
}

// WithClock sets the time source used to flag overdue tasks.
func WithClock(now func() time.Time) Option {
	return func(t *Text) {
		if now != nil {
			t.now = now
		}
	}
}

// NewText returns a Text renderer writing tasks to out and errors to
// errOut.
func NewText(out, errOut io.Writer, opts ...Option) *Text {
	r := lipgloss.NewRenderer(out)
	t := &Text{
		out:        out,
		errOut:     errOut,
		renderer:   r,
		styles:     styles.New(styles.LightPalette(), r),
		titleWidth: 40,
		dateLayout: task.DisplayDateLayout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RenderTasks prints one row per task.
func (t *Text) RenderTasks(tasks []task.Task, filter task.Filter) {
	if t.Quiet {
		return
	}
	s := t.styles

	if len(tasks) == 0 {
		msg := "No tasks yet."
		if filter != task.FilterAll {
			msg = fmt.Sprintf("No %s tasks.", filter)
		}
		fmt.Fprintln(t.out, s.Muted.Render(msg))
		return
	}

	header := strings.Join([]string{
		util.PadRight("ID", IDWidth),
		"   ",
		util.PadRight("TITLE", t.titleWidth),
		util.PadRight("DUE", 14),
		"PRIORITY",
	}, " ")
	fmt.Fprintln(t.out, s.Header.Render(header))

	now := t.now()
	for _, tk := range tasks {
		fmt.Fprintln(t.out, t.row(tk, now))
	}
}

func (t *Text) row(tk task.Task, now time.Time) string {
	s := t.styles

	check := "[ ]"
	title := s.Row
	if tk.Completed {
		check = s.Success.Render("[x]")
		title = s.Completed
	}

	due := task.FormatDate(tk.DueDate, t.dateLayout)
	dueCell := util.PadRight(due, 14)
	if tk.IsOverdue(now) {
		dueCell = s.Overdue.Render(dueCell)
	}

	return strings.Join([]string{
		s.Muted.Render(util.PadRight(util.ShortID(tk.ID, IDWidth), IDWidth)),
		check,
		title.Render(util.PadRight(util.SingleLine(tk.Title), t.titleWidth)),
		dueCell,
		s.PriorityBadge(tk.Priority),
	}, " ")
}

// UpdateStats prints the counts line.
func (t *Text) UpdateStats(c task.Counts) {
	if t.Quiet {
		return
	}
	line := fmt.Sprintf("%d total · %d pending · %d completed", c.Total, c.Pending, c.Completed)
	fmt.Fprintln(t.out, t.styles.StatsBar.Render(line))
}

// ShowError prints msg to the error writer.
func (t *Text) ShowError(msg string) {
	fmt.Fprintln(t.errOut, t.styles.Error.Render(msg))
}

// ApplyTheme switches palettes.
func (t *Text) ApplyTheme(theme taskstore.Theme) {
	t.styles = styles.New(styles.PaletteFor(theme), t.renderer)
}

// ClearForm is a no-op; the command line has no form.
func (t *Text) ClearForm() {}

// Task prints a single task in detail.
func (t *Text) Task(tk task.Task) {
	s := t.styles
	status := "pending"
	if tk.Completed {
		status = "completed"
	}
	rows := [][2]string{
		{"ID", tk.ID},
		{"Title", tk.Title},
		{"Due", task.FormatDate(tk.DueDate, t.dateLayout)},
		{"Priority", s.PriorityBadge(tk.Priority)},
		{"Status", status},
		{"Created", tk.CreatedAt.Local().Format(time.DateTime)},
	}
	for _, r := range rows {
		fmt.Fprintf(t.out, "%s %s\n", s.Header.Render(util.PadRight(r[0]+":", 10)), r[1])
	}
}

// Success prints a confirmation line.
func (t *Text) Success(format string, args ...any) {
	if t.Quiet {
		return
	}
	fmt.Fprintln(t.out, t.styles.Success.Render(fmt.Sprintf(format, args...)))
}
