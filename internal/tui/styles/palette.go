// Package styles holds the lipgloss palettes and styles for the light and
// dark themes.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// Palette defines the colors of one theme.
type Palette struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
}

// LightPalette is the default theme. Colors keep 4.5:1 contrast on a white
// background.
func LightPalette() *Palette {
	return &Palette{
		Primary: lipgloss.Color("#4F46E5"), // Indigo-600
		Success: lipgloss.Color("#047857"), // Emerald-700
		Warning: lipgloss.Color("#B45309"), // Amber-700
		Error:   lipgloss.Color("#B91C1C"), // Red-700
		Muted:   lipgloss.Color("#6B7280"), // Gray-500
		Surface: lipgloss.Color("#F3F4F6"), // Gray-100
		Text:    lipgloss.Color("#111827"), // Gray-900
		Border:  lipgloss.Color("#D1D5DB"), // Gray-300

		PriorityLow:    lipgloss.Color("#047857"),
		PriorityMedium: lipgloss.Color("#B45309"),
		PriorityHigh:   lipgloss.Color("#B91C1C"),
	}
}

// DarkPalette is the dark theme.
func DarkPalette() *Palette {
	return &Palette{
		Primary: lipgloss.Color("#A78BFA"), // Violet-400
		Success: lipgloss.Color("#10B981"), // Emerald-500
		Warning: lipgloss.Color("#F59E0B"), // Amber-500
		Error:   lipgloss.Color("#F87171"), // Red-400
		Muted:   lipgloss.Color("#9CA3AF"), // Gray-400
		Surface: lipgloss.Color("#1F2937"), // Gray-800
		Text:    lipgloss.Color("#F9FAFB"), // Gray-50
		Border:  lipgloss.Color("#6B7280"), // Gray-500

		PriorityLow:    lipgloss.Color("#10B981"),
		PriorityMedium: lipgloss.Color("#F59E0B"),
		PriorityHigh:   lipgloss.Color("#F87171"),
	}
}

// PaletteFor returns the palette of theme. Unknown themes get the light
// palette.
func PaletteFor(theme taskstore.Theme) *Palette {
	if theme == taskstore.ThemeDark {
		return DarkPalette()
	}
	return LightPalette()
}

// PriorityColor returns the badge color for p. Unknown priorities use the
// muted color.
func (p *Palette) PriorityColor(pr task.Priority) lipgloss.Color {
	switch pr {
	case task.PriorityHigh:
		return p.PriorityHigh
	case task.PriorityMedium:
		return p.PriorityMedium
	case task.PriorityLow:
		return p.PriorityLow
	}
	return p.Muted
}
