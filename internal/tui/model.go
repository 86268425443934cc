// Package tui is the interactive terminal interface. The Model is a
// bubbletea program that drives an app.Coordinator and draws whatever the
// coordinator renders into it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/app"
	"github.com/Iron-Ham/taskmgr/internal/logging"
	"github.com/Iron-Ham/taskmgr/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
	modeConfirmClear
)

// refreshMsg asks the model to reload tasks from the store.
type refreshMsg struct{}

// Options configures a Model.
type Options struct {
	Filter          task.Filter
	DefaultPriority task.Priority
	ConfirmDelete   bool
	TitleWidth      int
	DateLayout      string
	Logger          *logging.Logger

	// Renderer decides the color profile. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
	// Now is the clock used to flag overdue tasks.
	Now func() time.Time
}

// Model is the bubbletea model.
type Model struct {
	coord  *app.Coordinator
	screen *screen
	form   form
	logger *logging.Logger

	mode      mode
	cursor    int
	pendingID string
	showHelp  bool
	quitting  bool

	width, height int

	confirmDelete bool
	titleWidth    int
	dateLayout    string
	now           func() time.Time
}

// NewModel builds a Model over store and renders the initial state.
func NewModel(store app.TaskStore, opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	titleWidth := opts.TitleWidth
	if titleWidth <= 0 {
		titleWidth = 40
	}
	prio := opts.DefaultPriority
	if !prio.Valid() {
		prio = task.DefaultPriority
	}

	scr := newScreen(r)
	coord := app.New(store, scr,
		app.WithFilter(opts.Filter),
		app.WithDefaultPriority(prio),
		app.WithLogger(logger),
	)
	coord.Init()

	return Model{
		coord:         coord,
		screen:        scr,
		form:          newForm(prio, titleWidth),
		logger:        logger,
		confirmDelete: opts.ConfirmDelete,
		titleWidth:    titleWidth,
		dateLayout:    opts.DateLayout,
		now:           now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.coord.Refresh()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// selected returns the task under the cursor.
func (m Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.screen.tasks) {
		return task.Task{}, false
	}
	return m.screen.tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.screen.tasks); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// An error stays on screen until the next key press.
	if m.screen.err != "" {
		m.screen.err = ""
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDelete(msg)
	case modeConfirmClear:
		return m.handleConfirmClear(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.screen.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.screen.tasks) - 1
		m.clampCursor()

	case "a", "n":
		m.mode = modeForm
		m.form.reset()
		return m, m.form.open(app.Form{})

	case "e", "enter":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		f, ok := m.coord.Edit(t.ID)
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		m.form.reset()
		return m, m.form.open(f)

	case " ", "x":
		if t, ok := m.selected(); ok {
			_ = m.coord.Toggle(t.ID)
			m.clampCursor()
		}

	case "d", "delete":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.confirmDelete {
			m.pendingID = t.ID
			m.mode = modeConfirmDelete
			return m, nil
		}
		_ = m.coord.Delete(t.ID)
		m.clampCursor()

	case "C":
		if len(m.screen.tasks) > 0 || m.screen.counts.Total > 0 {
			m.mode = modeConfirmClear
		}

	case "tab":
		m.setFilter(m.coord.Filter().Next())
	case "1":
		m.setFilter(task.FilterAll)
	case "2":
		m.setFilter(task.FilterPending)
	case "3":
		m.setFilter(task.FilterCompleted)

	case "t":
		_ = m.coord.ToggleTheme()
	case "r":
		m.coord.Refresh()
		m.clampCursor()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) setFilter(f task.Filter) {
	m.coord.SetFilter(f)
	m.cursor = 0
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.form.reset()
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "ctrl+p":
		m.form.cyclePriority()
		return m, nil
	case "enter":
		if m.form.focus != fieldPriority {
			return m, m.form.next()
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	stored, err := m.coord.Submit(m.form.value())
	if err != nil {
		// The coordinator already showed the error; keep the form open so
		// the input can be fixed.
		return m, nil
	}
	if m.screen.takeFormCleared() {
		m.form.reset()
		m.mode = modeList
	}
	m.selectID(stored.ID)
	return m, nil
}

// selectID moves the cursor to the task with id if it is visible.
func (m *Model) selectID(id string) {
	for i, t := range m.screen.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingID
	m.pendingID = ""
	m.mode = modeList
	if msg.String() == "y" || msg.String() == "Y" {
		_ = m.coord.Delete(id)
		m.clampCursor()
	}
	return m, nil
}

func (m Model) handleConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.String() == "y" || msg.String() == "Y" {
		_ = m.coord.ClearAll()
		m.cursor = 0
	}
	return m, nil
}
