// Package discovery expands command line arguments into the list of files
// presented for editing.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/paths"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Unlimited disables the depth limit
const Unlimited = -1

// Options controls a discovery walk
type Options struct {
	// Roots are files or directories to expand. Empty means ".".
	Roots []string

	// MaxDepth limits recursion. A directory reached with no depth left is
	// listed itself instead of its contents. Unlimited (-1) walks everything.
	MaxDepth int

	// Exclude holds doublestar patterns matched against the slash separated
	// path relative to its root and against the base name
	Exclude []string

	// WorkDir resolves relative roots. Empty means the process working
	// directory.
	WorkDir string
}

type walker struct {
	opts    Options
	logger  zerolog.Logger
	seen    map[string]struct{}
	found   []string
	root    string
	onStack map[string]struct{}
}

// Discover walks the roots and returns the sorted, deduplicated canonical
// paths found.
func Discover(opts Options) ([]string, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid exclude pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}

	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var resolver *paths.Resolver
	if opts.WorkDir != "" {
		resolver = paths.NewResolverAt(opts.WorkDir)
	} else {
		r, err := paths.NewResolver()
		if err != nil {
			return nil, err
		}
		resolver = r
	}

	w := &walker{
		opts:   opts,
		logger: logging.GetLogger("discovery"),
		seen:   make(map[string]struct{}),
	}

	for _, root := range roots {
		canonical, err := resolver.Canonical(root)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(canonical); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrFileNotFound, "no such file or directory: %s", root).
					WithDetail("path", root)
			}
			return nil, errors.Wrapf(err, errors.ErrIO, "cannot access %s", root).
				WithDetail("op", "stat").
				WithDetail("path", root)
		}

		w.root = canonical
		w.onStack = make(map[string]struct{})
		if err := w.walk(canonical, opts.MaxDepth); err != nil {
			return nil, err
		}
	}

	sort.Strings(w.found)
	w.logger.Debug().Int("files", len(w.found)).Strs("roots", roots).Msg("discovery complete")
	return w.found, nil
}

func (w *walker) walk(path string, depth int) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn().Str("path", path).Msg("skipping dangling symlink")
			return nil
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot resolve %s", path).
			WithDetail("op", "readlink").
			WithDetail("path", path)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot access %s", resolved).
			WithDetail("op", "stat").
			WithDetail("path", resolved)
	}

	switch {
	case info.IsDir():
		if depth == 0 {
			w.add(resolved)
			return nil
		}
		if _, looping := w.onStack[resolved]; looping {
			w.logger.Warn().Str("path", path).Msg("skipping symlink loop")
			return nil
		}
		w.onStack[resolved] = struct{}{}
		defer delete(w.onStack, resolved)

		entries, err := os.ReadDir(resolved)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot read directory %s", resolved).
				WithDetail("op", "readdir").
				WithDetail("path", resolved)
		}

		next := depth
		if depth > 0 {
			next = depth - 1
		}
		for _, entry := range entries {
			child := filepath.Join(path, entry.Name())
			if w.excluded(child) {
				w.logger.Trace().Str("path", child).Msg("excluded")
				continue
			}
			if err := w.walk(child, next); err != nil {
				return err
			}
		}
	case info.Mode().IsRegular():
		w.add(resolved)
	default:
		w.logger.Debug().Str("path", resolved).Str("mode", info.Mode().String()).Msg("skipping special file")
	}
	return nil
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.found = append(w.found, path)
}

func (w *walker) excluded(path string) bool {
	if len(w.opts.Exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range w.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
