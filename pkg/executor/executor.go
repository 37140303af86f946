package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/filesystem"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/rs/zerolog"
)

// Pruner removes directories emptied by an operation
type Pruner interface {
	Prune(removed string) ([]string, error)
}

// Result describes what an Execute call did
type Result struct {
	// Applied lists the operations performed, in order
	Applied []types.Operation `json:"applied" yaml:"applied"`

	// Pruned lists the directories removed because they became empty
	Pruned []string `json:"pruned,omitempty" yaml:"pruned,omitempty"`

	// NotRun lists the operations never reached because execution halted
	NotRun []types.Operation `json:"not_run,omitempty" yaml:"not_run,omitempty"`

	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Duration time.Duration `json:"-" yaml:"-"`
}

// Option configures an Executor
type Option func(*Executor)

// WithConfirmer sets the prompt used for the deletion batch and collisions
func WithConfirmer(c types.Confirmer) Option {
	return func(e *Executor) { e.confirmer = c }
}

// WithReporter sets the receiver of progress notifications
func WithReporter(r types.Reporter) Option {
	return func(e *Executor) { e.reporter = r }
}

// WithPruner sets the directory pruner. A nil pruner disables pruning.
func WithPruner(p Pruner) Option {
	return func(e *Executor) { e.pruner = p }
}

// WithDryRun reports operations without prompting or mutating anything
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) { e.dryRun = dryRun }
}

// WithLogger overrides the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// Executor runs operations against a filesystem
type Executor struct {
	fs        types.FS
	confirmer types.Confirmer
	reporter  types.Reporter
	pruner    Pruner
	dryRun    bool
	logger    zerolog.Logger
}

// New creates an executor. Without a confirmer every prompt is declined,
// so destructive steps never happen by accident.
func New(fs types.FS, opts ...Option) *Executor {
	if fs == nil {
		fs = filesystem.NewOS()
	}

	e := &Executor{
		fs:        fs,
		confirmer: declineAll{},
		reporter:  nopReporter{},
		logger:    logging.GetLogger("executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies order. On error the returned Result is still populated
// with whatever was applied before the halt.
func (e *Executor) Execute(ctx context.Context, order types.ExecutionOrder) (*Result, error) {
	start := time.Now()
	result := &Result{DryRun: e.dryRun}
	defer func() { result.Duration = time.Since(start) }()

	e.logger.Debug().
		Int("operations", len(order)).
		Bool("dry_run", e.dryRun).
		Msg("Executing plan")

	if len(order) == 0 {
		return result, nil
	}

	if err := e.confirmDeletes(order); err != nil {
		result.NotRun = append(result.NotRun, order...)
		return result, err
	}

	for i, op := range order {
		if err := ctx.Err(); err != nil {
			result.NotRun = append(result.NotRun, order[i:]...)
			return result, errors.Wrap(err, errors.ErrIO, "execution cancelled").
				WithDetail("op", string(op.Kind)).
				WithDetail("path", op.Source)
		}

		var err error
		switch op.Kind {
		case types.OpDelete:
			err = e.delete(op, result)
		case types.OpMove:
			err = e.move(op, result)
		default:
			err = errors.Newf(errors.ErrInternal, "unknown operation kind %q", op.Kind)
		}
		if err != nil {
			// the failing operation may have been partially applied (a
			// pruning error after a successful rename) and is then already
			// listed in Applied
			if len(result.Applied) == 0 || result.Applied[len(result.Applied)-1] != op {
				result.NotRun = append(result.NotRun, op)
			}
			result.NotRun = append(result.NotRun, order[i+1:]...)
			e.logger.Error().Err(err).Str("operation", op.String()).Msg("Execution halted")
			return result, err
		}
	}

	e.logger.Info().
		Int("applied", len(result.Applied)).
		Int("pruned", len(result.Pruned)).
		Dur("duration", time.Since(start)).
		Msg("Plan executed")

	return result, nil
}

func (e *Executor) confirmDeletes(order types.ExecutionOrder) error {
	deletes := order.Deletes()
	if len(deletes) == 0 {
		return nil
	}

	sources := make([]string, len(deletes))
	for i, op := range deletes {
		sources[i] = op.Source
	}
	e.reporter.PendingDeletes(sources)

	if e.dryRun {
		return nil
	}

	ok, err := e.confirmer.Confirm(types.ConfirmationRequest{
		ID:          types.ConfirmDeleteBatch,
		Title:       fmt.Sprintf("Delete %d file(s)?", len(deletes)),
		Description: "The listed files will be removed permanently",
		Items:       sources,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrConfirmationDeclined, "failed to read confirmation")
	}
	if !ok {
		return errors.Newf(errors.ErrConfirmationDeclined, "deletion of %d file(s) declined", len(deletes)).
			WithDetail("files", sources)
	}
	return nil
}

func (e *Executor) delete(op types.Operation, result *Result) error {
	e.reporter.Deleting(op.Source)
	if e.dryRun {
		result.Applied = append(result.Applied, op)
		return nil
	}

	if err := e.fs.Remove(op.Source); err != nil {
		return ioError(err, "remove", op.Source)
	}
	e.logger.Debug().Str("path", op.Source).Msg("Removed file")
	result.Applied = append(result.Applied, op)

	return e.prune(op.Source, result)
}

func (e *Executor) move(op types.Operation, result *Result) error {
	sameFile, err := e.checkCollision(op)
	if err != nil {
		return err
	}

	e.reporter.Moving(op.Source, op.Destination)
	if e.dryRun {
		result.Applied = append(result.Applied, op)
		return nil
	}

	parent := filepath.Dir(op.Destination)
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		return ioError(err, "mkdir", parent)
	}
	if err := e.fs.Rename(op.Source, op.Destination); err != nil {
		return ioError(err, "rename", op.Source).WithDetail("destination", op.Destination)
	}
	if sameFile {
		// rename(2) between two links to one file succeeds without
		// removing the source name
		if _, err := e.fs.Lstat(op.Source); err == nil {
			if err := e.fs.Remove(op.Source); err != nil {
				return ioError(err, "remove", op.Source)
			}
		}
	}
	e.logger.Debug().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Msg("Renamed file")
	result.Applied = append(result.Applied, op)

	return e.prune(op.Source, result)
}

// checkCollision asks before a move replaces an existing destination. The
// sequencer guarantees the destination is not a pending source, so anything
// found there is either unrelated to the plan or a hard link to the source.
func (e *Executor) checkCollision(op types.Operation) (bool, error) {
	destInfo, err := e.fs.Lstat(op.Destination)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, ioError(err, "stat", op.Destination)
	}

	sameFile := false
	if srcInfo, err := e.fs.Stat(op.Source); err == nil {
		sameFile = os.SameFile(srcInfo, destInfo)
	}
	e.reporter.Collision(op.Source, op.Destination, sameFile)

	if e.dryRun {
		return sameFile, nil
	}

	req := types.ConfirmationRequest{
		ID:          types.ConfirmOverwrite,
		Title:       fmt.Sprintf("Overwrite %s?", op.Destination),
		Description: fmt.Sprintf("%s will replace the existing file", op.Source),
		Items:       []string{op.Destination},
	}
	if sameFile {
		req.ID = types.ConfirmSameFile
		req.Title = fmt.Sprintf("%s and %s are the same file. Continue?", op.Source, op.Destination)
		req.Description = "The source name will be removed and the destination name kept"
	}

	ok, err := e.confirmer.Confirm(req)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCollisionDeclined, "failed to read confirmation").
			WithDetail("source", op.Source).
			WithDetail("destination", op.Destination)
	}
	if !ok {
		return false, errors.Newf(errors.ErrCollisionDeclined, "refused to overwrite %s", op.Destination).
			WithDetail("source", op.Source).
			WithDetail("destination", op.Destination)
	}
	return sameFile, nil
}

func (e *Executor) prune(removed string, result *Result) error {
	if e.pruner == nil {
		return nil
	}

	dirs, err := e.pruner.Prune(removed)
	for _, dir := range dirs {
		e.reporter.Pruned(dir)
	}
	result.Pruned = append(result.Pruned, dirs...)
	return err
}

func ioError(err error, op, path string) *errors.MviError {
	return errors.Wrapf(err, errors.ErrIO, "%s %s failed", op, path).
		WithDetail("op", op).
		WithDetail("path", path)
}

type declineAll struct{}

func (declineAll) Confirm(types.ConfirmationRequest) (bool, error) { return false, nil }

type nopReporter struct{}

func (nopReporter) PendingDeletes([]string)        {}
func (nopReporter) Deleting(string)                {}
func (nopReporter) Moving(string, string)          {}
func (nopReporter) Collision(string, string, bool) {}
func (nopReporter) Pruned(string)                  {}
