package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// Styles contains the lipgloss styles built from a palette. Build a new
// one when the theme changes.
type Styles struct {
	Palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Header    lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Overdue   lipgloss.Style
	Badge     lipgloss.Style

	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	FormBox   lipgloss.Style
	FormLabel lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	StatsBar lipgloss.Style
}

// New builds Styles for p. Styles are created on r so color output
// follows the capabilities of r's writer; a nil r uses the default
// renderer.
func New(p *Palette, r *lipgloss.Renderer) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	ns := r.NewStyle

	return &Styles{
		Palette: p,

		Title:    ns().Bold(true).Foreground(p.Primary),
		Subtitle: ns().Foreground(p.Muted).Italic(true),

		TabActive:   ns().Bold(true).Foreground(p.Surface).Background(p.Primary).Padding(0, 1),
		TabInactive: ns().Foreground(p.Muted).Padding(0, 1),

		Header:    ns().Bold(true).Foreground(p.Muted),
		Row:       ns().Foreground(p.Text),
		Selected:  ns().Bold(true).Foreground(p.Primary),
		Completed: ns().Foreground(p.Muted).Strikethrough(true),
		Overdue:   ns().Bold(true).Foreground(p.Error),
		Badge:     ns().Bold(true),

		Muted:   ns().Foreground(p.Muted),
		Success: ns().Foreground(p.Success),
		Error:   ns().Bold(true).Foreground(p.Error),
		Warning: ns().Foreground(p.Warning),

		FormBox: ns().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FormLabel: ns().Bold(true).Foreground(p.Primary),

		HelpKey:  ns().Bold(true).Foreground(p.Primary),
		HelpDesc: ns().Foreground(p.Muted),
		StatsBar: ns().Foreground(p.Muted),
	}
}

// For returns Styles for theme on the default renderer.
func For(theme taskstore.Theme) *Styles {
	return New(PaletteFor(theme), nil)
}

// PriorityBadge renders p's label in its priority color.
func (s *Styles) PriorityBadge(p task.Priority) string {
	label := p.Label()
	if label == "" {
		label = "-"
	}
	return s.Badge.Foreground(s.Palette.PriorityColor(p)).Render(label)
}

// Help renders a "key description" pair.
func (s *Styles) Help(key, desc string) string {
	return s.HelpKey.Render(key) + " " + s.HelpDesc.Render(desc)
}
