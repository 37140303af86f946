package planner

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/paths"
	"github.com/arthur-debert/mvi/pkg/types"
)

// Validate checks that a change set is internally consistent: every move
// has a destination, no two moves share a destination, and no destination
// would have to live inside a pending source or inside another destination.
func Validate(cs *types.ChangeSet) error {
	changes := cs.Changes()
	for _, c := range changes {
		if c.Source == "" {
			return errors.New(errors.ErrInvalidInput, "change without source")
		}
	}

	claimed := make(map[string][]string)
	for _, c := range changes {
		if c.Action != types.ActionMove {
			continue
		}
		if c.Destination == "" {
			return errors.Newf(errors.ErrInvalidInput, "move of %s has no destination", c.Source).
				WithDetail("source", c.Source)
		}
		claimed[c.Destination] = append(claimed[c.Destination], c.Source)

		for dir := filepath.Dir(c.Destination); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			if cs.Has(dir) {
				return errors.Newf(errors.ErrConflict, "cannot move %s to %s: %s is a pending source", c.Source, c.Destination, dir).
					WithDetail("source", c.Source).
					WithDetail("destination", c.Destination)
			}
		}
	}

	dests := make([]string, 0, len(claimed))
	for dest, srcs := range claimed {
		if len(srcs) > 1 {
			dests = append(dests, dest)
		}
	}
	if len(dests) > 0 {
		sort.Strings(dests)
		dest := dests[0]
		return errors.Newf(errors.ErrConflict, "%d files would be moved to %s", len(claimed[dest]), dest).
			WithDetail("destination", dest).
			WithDetail("sources", claimed[dest])
	}

	// a destination nested below another destination cannot be created
	// whichever of the two moves runs first
	for _, c := range changes {
		if c.Action != types.ActionMove {
			continue
		}
		for dir := filepath.Dir(c.Destination); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			if owners, ok := claimed[dir]; ok {
				return errors.Newf(errors.ErrConflict, "cannot move %s to %s: %s is also a destination", c.Source, c.Destination, dir).
					WithDetail("source", c.Source).
					WithDetail("destination", c.Destination).
					WithDetail("sources", append([]string{c.Source}, owners...))
			}
		}
	}

	return nil
}

// Sequence validates cs and returns an execution order in which no
// operation overwrites a path that a later operation still needs. If no
// such order exists it fails with an errors.ErrCycle error and returns no
// operations at all.
func Sequence(cs *types.ChangeSet) (types.ExecutionOrder, error) {
	logger := logging.GetLogger("planner")
	defer logging.LogOperationStart(logger, "sequence")()

	if err := Validate(cs); err != nil {
		return nil, err
	}

	pending := cs.Changes()
	pendingSources := make(map[string]struct{}, len(pending))
	for _, c := range pending {
		pendingSources[c.Source] = struct{}{}
	}

	order := make(types.ExecutionOrder, 0, len(pending))
	round := 0
	for len(pending) > 0 {
		round++
		var ready, blocked []types.Change
		for _, c := range pending {
			if isReady(c, pendingSources) {
				ready = append(ready, c)
			} else {
				blocked = append(blocked, c)
			}
		}

		if len(ready) == 0 {
			return nil, cycleError(cs, blocked)
		}

		for _, c := range ready {
			order = append(order, types.OperationFromChange(c))
			delete(pendingSources, c.Source)
		}
		logger.Trace().Int("round", round).Int("ready", len(ready)).Int("blocked", len(blocked)).Msg("sequenced round")
		pending = blocked
	}

	logger.Debug().Int("operations", len(order)).Int("rounds", round).Msg("plan sequenced")
	return order, nil
}

func isReady(c types.Change, pendingSources map[string]struct{}) bool {
	if c.Action == types.ActionDelete {
		return true
	}
	_, occupied := pendingSources[c.Destination]
	return !occupied
}

// cycleError reports every unresolved source plus one witness cycle, found
// by following destinations from the first blocked entry until a path
// repeats.
func cycleError(cs *types.ChangeSet, blocked []types.Change) error {
	remaining := make([]string, 0, len(blocked))
	for _, c := range blocked {
		remaining = append(remaining, c.Source)
	}

	visited := make(map[string]int)
	var walk []string
	cur := blocked[0].Source
	for {
		if at, seen := visited[cur]; seen {
			walk = append(walk[at:], cur)
			break
		}
		visited[cur] = len(walk)
		walk = append(walk, cur)
		c, _ := cs.Get(cur)
		cur = c.Destination
	}

	return errors.Newf(errors.ErrCycle, "filename cycle detected: %s", strings.Join(shorten(walk), " -> ")).
		WithDetail("cycle", walk).
		WithDetail("remaining", remaining)
}

// shorten renders cycle members relative to their common directory when
// they share one, which keeps the message readable for long paths.
func shorten(walk []string) []string {
	common := filepath.Dir(walk[0])
	for _, p := range walk[1:] {
		for !paths.IsWithin(p, common) {
			parent := filepath.Dir(common)
			if parent == common {
				return walk
			}
			common = parent
		}
	}

	out := make([]string, len(walk))
	for i, p := range walk {
		rel, err := filepath.Rel(common, p)
		if err != nil {
			return walk
		}
		out[i] = rel
	}
	return out
}
