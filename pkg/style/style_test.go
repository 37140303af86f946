package style

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPaletteFollowsRendererProfile(t *testing.T) {
	plain := lipgloss.NewRenderer(&bytes.Buffer{})
	plain.SetColorProfile(termenv.Ascii)
	p := NewPalette(plain)
	assert.Equal(t, "abc", p.Removed.Render("abc"))
	assert.Equal(t, "abc", p.Added.Render("abc"))

	colored := lipgloss.NewRenderer(&bytes.Buffer{})
	colored.SetColorProfile(termenv.ANSI)
	p = NewPalette(colored)
	out := p.Removed.Render("abc")
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "\x1b[")
	assert.NotEqual(t, out, p.Added.Render("abc"))
}
