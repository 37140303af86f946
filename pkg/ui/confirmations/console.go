// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/mvi/pkg/types"
)

// ConsoleConfirmer implements types.Confirmer by asking on a terminal
type ConsoleConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleConfirmer creates a confirmer reading answers from in and
// writing questions to out
func NewConsoleConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm shows the request and reads one line. Items are not listed, the
// reporter has already printed them. Any answer starting with
// "y" approves; an empty answer takes the request default. End of input
// declines.
func (c *ConsoleConfirmer) Confirm(req types.ConfirmationRequest) (bool, error) {
	if req.Description != "" {
		fmt.Fprintln(c.out, req.Description)
	}

	defaultMarker := "[y/N]"
	if req.Default {
		defaultMarker = "[Y/n]"
	}
	fmt.Fprintf(c.out, "%s %s: ", req.Title, defaultMarker)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.out)
		return false, nil
	}

	response := strings.ToLower(strings.TrimSpace(line))
	if response == "" {
		return req.Default, nil
	}
	return strings.HasPrefix(response, "y"), nil
}

// AutoConfirmer answers every request the same way without asking. It
// backs --yes and non-interactive runs.
type AutoConfirmer struct {
	Answer bool
}

// Confirm implements types.Confirmer
func (a AutoConfirmer) Confirm(types.ConfirmationRequest) (bool, error) {
	return a.Answer, nil
}
