// Package style holds the terminal styles used for mvi's output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of styles bound to one lipgloss renderer, so colour
// decisions follow that renderer's output and profile.
type Palette struct {
	Removed lipgloss.Style
	Added   lipgloss.Style
	Path    lipgloss.Style
	Verb    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewPalette builds the styles for r
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Removed: r.NewStyle().
			Bold(true).
			Foreground(DiffForeground).
			Background(RemovedBackground),

		Added: r.NewStyle().
			Bold(true).
			Foreground(DiffForeground).
			Background(AddedBackground),

		Path: r.NewStyle().
			Foreground(PrimaryColor),

		Verb: r.NewStyle().
			Bold(true),

		Warning: r.NewStyle().
			Foreground(WarningColor).
			Bold(true),

		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),

		Muted: r.NewStyle().
			Foreground(MutedColor),
	}
}

// Bold renders s in bold with the default renderer
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
