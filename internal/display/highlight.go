package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
	"github.com/muesli/termenv"
)

// Highlighter styles the matched span of a prompt inside an echoed log line.
type Highlighter struct {
	enabled bool
	match   lipgloss.Style
}

// NewHighlighter returns a highlighter for w. When w is not a colour
// terminal, or enabled is false, lines are passed through untouched.
func NewHighlighter(w io.Writer, enabled bool) *Highlighter {
	return newHighlighter(lipgloss.NewRenderer(w), enabled)
}

// newHighlighter binds the theme's highlight colours to r, so colour support
// is detected on the output writer rather than on the process's stdout.
func newHighlighter(r *lipgloss.Renderer, enabled bool) *Highlighter {
	return &Highlighter{
		enabled: enabled && r.ColorProfile() != termenv.Ascii,
		match: r.NewStyle().
			Bold(true).
			Foreground(theme.DefaultColors.Orange).
			TabWidth(lipgloss.NoTabConversion),
	}
}

// Enabled reports whether lines will be styled.
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// Line renders line with the bytes in [start, end) styled.
func (h *Highlighter) Line(line string, start, end int) string {
	if !h.enabled || start < 0 || end > len(line) || start >= end {
		return line
	}
	return line[:start] + h.match.Render(line[start:end]) + line[end:]
}
