// Package util holds the text helpers shared by the CLI and TUI renderers.
package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TruncateString shortens s to at most maxWidth terminal columns, ending
// it with an ellipsis when anything was cut. Wide characters count as two
// columns. Embedded ANSI sequences are kept intact, so styled text can be
// passed in.
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRight truncates or pads s with spaces to exactly width columns.
func PadRight(s string, width int) string {
	s = TruncateString(s, width)
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// ShortID returns the first n characters of a task id, which is enough to
// tell tasks apart in a listing.
func ShortID(id string, n int) string {
	if n <= 0 || len(id) <= n {
		return id
	}
	return id[:n]
}

// SingleLine collapses newlines and runs of whitespace so a title fits on
// one table row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
