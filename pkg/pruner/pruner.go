// Package pruner removes directories left empty after a file was moved
// away or deleted.
package pruner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/rs/zerolog"
)

// Pruner walks up from a removed file deleting empty ancestors
type Pruner struct {
	fs     types.FS
	stopAt map[string]struct{}
	logger zerolog.Logger
}

// Option configures a Pruner
type Option func(*Pruner)

// WithStopAt protects the given directories: they are never removed, even
// when empty, and the walk ends when it reaches one of them.
func WithStopAt(dirs ...string) Option {
	return func(p *Pruner) {
		for _, d := range dirs {
			p.stopAt[filepath.Clean(d)] = struct{}{}
		}
	}
}

// New creates a pruner over fs
func New(fs types.FS, opts ...Option) *Pruner {
	p := &Pruner{
		fs:     fs,
		stopAt: make(map[string]struct{}),
		logger: logging.GetLogger("pruner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prune is called with the path of a file that was just removed or moved
// away. Starting at its parent it removes each ancestor that is now empty
// and stops at the first one that still has entries. It returns the removed
// directories, nearest first.
func (p *Pruner) Prune(removed string) ([]string, error) {
	var pruned []string

	dir := filepath.Dir(filepath.Clean(removed))
	for {
		if _, protected := p.stopAt[dir]; protected {
			break
		}

		entries, err := p.fs.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return pruned, errors.Wrapf(err, errors.ErrIO, "failed to read directory %s", dir).
				WithDetail("op", "readdir").
				WithDetail("path", dir)
		}
		if len(entries) > 0 {
			break
		}

		if err := p.fs.Remove(dir); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return pruned, errors.Wrapf(err, errors.ErrIO, "failed to remove empty directory %s", dir).
				WithDetail("op", "rmdir").
				WithDetail("path", dir)
		}
		p.logger.Debug().Str("dir", dir).Msg("removed empty directory")
		pruned = append(pruned, dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return pruned, nil
}
