package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// ConsoleReporter implements types.Reporter by printing one line per event
type ConsoleReporter struct {
	out io.Writer
	r   *Renderer
}

// NewConsoleReporter prints events to out using r
func NewConsoleReporter(out io.Writer, r *Renderer) *ConsoleReporter {
	return &ConsoleReporter{out: out, r: r}
}

func (c *ConsoleReporter) PendingDeletes(paths []string) {
	fmt.Fprintln(c.out, "The following files will be deleted:")
	for _, p := range paths {
		fmt.Fprintf(c.out, "\t%s\n", c.r.Path(p))
	}
}

func (c *ConsoleReporter) Deleting(path string) {
	fmt.Fprintf(c.out, "%s %s\n", c.r.Verb("rm"), c.r.Path(path))
}

func (c *ConsoleReporter) Moving(source, destination string) {
	fmt.Fprintf(c.out, "%s %s\n", c.r.Verb("mv"), c.r.Diff(source, destination))
}

func (c *ConsoleReporter) Collision(source, destination string, sameFile bool) {
	fmt.Fprintf(c.out, "%s destination already exists: %s\n", c.warnPrefix(), destination)
	if sameFile {
		fmt.Fprintf(c.out, "%s %s and %s are hard links to the same file\n", c.warnPrefix(), source, destination)
	}
}

func (c *ConsoleReporter) Pruned(dir string) {
	fmt.Fprintf(c.out, "%s %s\n", c.r.Verb("rmdir"), c.r.Muted(dir))
}

func (c *ConsoleReporter) warnPrefix() string {
	if !c.r.Color() {
		return "warning:"
	}
	return pterm.Warning.Prefix.Style.Sprint(" " + pterm.Warning.Prefix.Text + " ")
}

// Message prints an informational line with pterm's info prefix when
// colour is on
func (c *ConsoleReporter) Message(msg string) {
	if !c.r.Color() {
		fmt.Fprintln(c.out, msg)
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", pterm.Info.Prefix.Style.Sprint(" "+pterm.Info.Prefix.Text+" "), msg)
}
