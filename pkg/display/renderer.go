// Package display renders mvi's console output: the coloured character
// diff shown for each rename, progress lines and plan documents.
package display

import (
	"io"
	"strings"

	"github.com/arthur-debert/mvi/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Renderer formats text for one output stream
type Renderer struct {
	color   bool
	palette style.Palette
	dmp     *diffmatchpatch.DiffMatchPatch
}

// NewRenderer creates a renderer for w. With color off every helper
// returns plain text and diffs use [-removed-]{+added+} markers.
func NewRenderer(w io.Writer, color bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		color:   color,
		palette: style.NewPalette(lr),
		dmp:     diffmatchpatch.New(),
	}
}

// Color reports whether the renderer styles its output
func (r *Renderer) Color() bool {
	return r.color
}

// Diff renders the character level difference between two strings as a
// single line: unchanged runs as is, removed runs highlighted red and
// added runs highlighted green.
func (r *Renderer) Diff(before, after string) string {
	diffs := r.dmp.DiffMain(before, after, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			if r.color {
				b.WriteString(r.palette.Removed.Render(d.Text))
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if r.color {
				b.WriteString(r.palette.Added.Render(d.Text))
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		}
	}
	return b.String()
}

// Verb renders an operation keyword such as mv or rm
func (r *Renderer) Verb(s string) string {
	if !r.color {
		return s
	}
	return r.palette.Verb.Render(s)
}

// Path renders a file path
func (r *Renderer) Path(s string) string {
	if !r.color {
		return s
	}
	return r.palette.Path.Render(s)
}

// Muted renders secondary text
func (r *Renderer) Muted(s string) string {
	if !r.color {
		return s
	}
	return r.palette.Muted.Render(s)
}
