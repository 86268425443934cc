package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
	"github.com/Iron-Ham/taskmgr/internal/tui/styles"
)

// screen is the app.Renderer the coordinator draws into. It only records
// state; View turns it into text. All calls happen on the bubbletea
// goroutine, so no locking is needed.
type screen struct {
	renderer *lipgloss.Renderer
	styles   *styles.Styles
	theme    taskstore.Theme

	tasks  []task.Task
	filter task.Filter
	counts task.Counts

	err         string
	formCleared bool
}

func newScreen(r *lipgloss.Renderer) *screen {
	s := &screen{renderer: r, filter: task.FilterAll}
	s.ApplyTheme(taskstore.DefaultTheme)
	return s
}

func (s *screen) RenderTasks(tasks []task.Task, filter task.Filter) {
	s.tasks = tasks
	s.filter = filter
}

func (s *screen) UpdateStats(c task.Counts) {
	s.counts = c
}

func (s *screen) ShowError(msg string) {
	s.err = msg
}

func (s *screen) ApplyTheme(theme taskstore.Theme) {
	s.theme = theme
	s.styles = styles.New(styles.PaletteFor(theme), s.renderer)
}

func (s *screen) ClearForm() {
	s.formCleared = true
}

// takeFormCleared reports whether ClearForm was called since the last
// check.
func (s *screen) takeFormCleared() bool {
	cleared := s.formCleared
	s.formCleared = false
	return cleared
}
