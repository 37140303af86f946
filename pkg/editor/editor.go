// Package editor hands a text buffer to the user's editor and reads back
// the result.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultCommand is used when neither the environment nor the
// configuration names an editor
const DefaultCommand = "vi"

// Editor lets the user modify text interactively
type Editor interface {
	Edit(ctx context.Context, text string) (string, error)
}

// ResolveCommand picks the editor command line: $VISUAL, then $EDITOR, then
// configured, then vi.
func ResolveCommand(configured string) string {
	for _, candidate := range []string{os.Getenv("VISUAL"), os.Getenv("EDITOR"), configured} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return DefaultCommand
}

// External runs an editor process on a temporary file
type External struct {
	// Command is the editor command line. It may carry arguments, as in
	// "code --wait"; the file name is appended last.
	Command string

	// TempDir holds the buffer file. Empty means os.TempDir().
	TempDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger zerolog.Logger
}

// NewExternal creates an editor for the given command line
func NewExternal(command string) *External {
	return &External{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logging.GetLogger("editor"),
	}
}

// Edit writes text to an mvi-*.txt temp file, waits for the editor to exit
// and returns the file's new content. The temp file is always removed.
func (e *External) Edit(ctx context.Context, text string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", errors.New(errors.ErrEditor, "no editor command configured")
	}

	f, err := os.CreateTemp(e.TempDir, "mvi-*.txt")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "failed to create buffer file").
			WithDetail("op", "create")
	}
	name := f.Name()
	defer func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			e.logger.Warn().Err(err).Str("file", name).Msg("failed to remove buffer file")
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return "", errors.Wrap(err, errors.ErrIO, "failed to write buffer file").
			WithDetail("op", "write").
			WithDetail("path", name)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "failed to write buffer file").
			WithDetail("op", "close").
			WithDetail("path", name)
	}

	e.logger.Debug().Strs("command", args).Str("file", name).Msg("launching editor")

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], name)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, errors.ErrEditor, "editor %q failed", e.Command).
			WithDetail("command", e.Command)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "failed to read back buffer file").
			WithDetail("op", "read").
			WithDetail("path", name)
	}
	return string(data), nil
}
