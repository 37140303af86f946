package core

import (
	"context"
	"os"

	"github.com/arthur-debert/mvi/pkg/changes"
	"github.com/arthur-debert/mvi/pkg/discovery"
	"github.com/arthur-debert/mvi/pkg/editor"
	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/executor"
	"github.com/arthur-debert/mvi/pkg/filesystem"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/pathindex"
	"github.com/arthur-debert/mvi/pkg/paths"
	"github.com/arthur-debert/mvi/pkg/planner"
	"github.com/arthur-debert/mvi/pkg/pruner"
	"github.com/arthur-debert/mvi/pkg/types"
)

// Options contains everything a session needs
type Options struct {
	// Roots are the files and directories given on the command line
	Roots []string

	// WorkDir resolves relative roots and destinations. Empty means the
	// process working directory.
	WorkDir string

	MaxDepth     int
	Exclude      []string
	DeleteTokens []string

	// Editor edits the buffer. Ignored when Buffer is set.
	Editor editor.Editor

	// Buffer is an already edited buffer applied instead of running the
	// editor
	Buffer *string

	Prune     bool
	KeepRoots bool
	DryRun    bool

	FS        types.FS
	Confirmer types.Confirmer
	Reporter  types.Reporter
}

// Result records every stage of a session
type Result struct {
	Index     *pathindex.Index
	Changes   *types.ChangeSet
	Order     types.ExecutionOrder
	Execution *executor.Result
}

// Enumerate discovers the files of a session and indexes them. An empty
// selection returns ErrNoFiles.
func Enumerate(opts Options) (*pathindex.Index, error) {
	found, err := discovery.Discover(discovery.Options{
		Roots:    opts.Roots,
		MaxDepth: opts.MaxDepth,
		Exclude:  opts.Exclude,
		WorkDir:  opts.WorkDir,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errors.New(errors.ErrNoFiles, "No files selected")
	}
	return pathindex.New(found), nil
}

// Plan turns an edited buffer into the change set and its execution order.
// It never touches the filesystem.
func Plan(text string, idx *pathindex.Index, opts Options) (*types.ChangeSet, types.ExecutionOrder, error) {
	resolver, err := newResolver(opts)
	if err != nil {
		return nil, nil, err
	}

	parseOpts := []changes.Option{changes.WithResolver(resolver)}
	if len(opts.DeleteTokens) > 0 {
		parseOpts = append(parseOpts, changes.WithDeleteTokens(opts.DeleteTokens))
	}

	cs, err := changes.Parse(text, idx, parseOpts...)
	if err != nil {
		return nil, nil, err
	}
	deletions := cs.Deletions()
	logger := logging.GetLogger("core")
	logger.Debug().
		Int("moves", cs.Len()-len(deletions)).
		Strs("deletions", deletions).
		Msg("buffer parsed")

	order, err := planner.Sequence(cs)
	if err != nil {
		return cs, nil, err
	}
	return cs, order, nil
}

// Run executes a whole session. The returned Result is populated as far as
// the session got, also when an error is returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("core")
	defer logging.LogOperationStart(logger, "session")()

	result := &Result{}

	idx, err := Enumerate(opts)
	if err != nil {
		return result, err
	}
	result.Index = idx
	logger.Info().Int("files", idx.Len()).Msg("files enumerated")

	var text string
	switch {
	case opts.Buffer != nil:
		text = *opts.Buffer
	case opts.Editor != nil:
		text, err = opts.Editor.Edit(ctx, idx.Render())
		if err != nil {
			return result, err
		}
	default:
		return result, errors.New(errors.ErrInternal, "no editor and no buffer given")
	}

	cs, order, err := Plan(text, idx, opts)
	result.Changes = cs
	if err != nil {
		logger.Warn().Err(err).Msg("planning failed, nothing was changed")
		return result, err
	}
	result.Order = order

	if len(order) == 0 {
		logger.Info().Msg("no changes")
		result.Execution = &executor.Result{DryRun: opts.DryRun}
		return result, nil
	}

	exec, err := newExecutor(opts)
	if err != nil {
		return result, err
	}
	result.Execution, err = exec.Execute(ctx, order)
	return result, err
}

func newExecutor(opts Options) (*executor.Executor, error) {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	execOpts := []executor.Option{executor.WithDryRun(opts.DryRun)}
	if opts.Confirmer != nil {
		execOpts = append(execOpts, executor.WithConfirmer(opts.Confirmer))
	}
	if opts.Reporter != nil {
		execOpts = append(execOpts, executor.WithReporter(opts.Reporter))
	}

	if opts.Prune {
		var pruneOpts []pruner.Option
		if opts.KeepRoots {
			dirs, err := rootDirs(opts)
			if err != nil {
				return nil, err
			}
			pruneOpts = append(pruneOpts, pruner.WithStopAt(dirs...))
		}
		execOpts = append(execOpts, executor.WithPruner(pruner.New(fs, pruneOpts...)))
	}

	return executor.New(fs, execOpts...), nil
}

// rootDirs returns the canonical paths of the roots that are directories
func rootDirs(opts Options) ([]string, error) {
	r, err := newResolver(opts)
	if err != nil {
		return nil, err
	}

	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var dirs []string
	for _, root := range roots {
		canonical, err := r.Canonical(root)
		if err != nil {
			return nil, err
		}
		if info, err := os.Stat(canonical); err == nil && info.IsDir() {
			dirs = append(dirs, canonical)
		}
	}
	return dirs, nil
}

func newResolver(opts Options) (*paths.Resolver, error) {
	if opts.WorkDir != "" {
		return paths.NewResolverAt(opts.WorkDir), nil
	}
	return paths.NewResolver()
}
