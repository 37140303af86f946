package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/mvi/pkg/executor"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/arthur-debert/mvi/pkg/ui"
	"gopkg.in/yaml.v3"
)

// Plan is the document written by --dry-run and by the summary of a run
type Plan struct {
	Operations []types.Operation `json:"operations" yaml:"operations"`
	Pruned     []string          `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	NotRun     []types.Operation `json:"not_run,omitempty" yaml:"not_run,omitempty"`
	Moves      int               `json:"moves" yaml:"moves"`
	Deletes    int               `json:"deletes" yaml:"deletes"`
	DryRun     bool              `json:"dry_run" yaml:"dry_run"`
}

// NewPlan describes an execution order that has not run
func NewPlan(order types.ExecutionOrder, dryRun bool) Plan {
	ops := make([]types.Operation, len(order))
	copy(ops, order)
	return Plan{
		Operations: ops,
		Moves:      len(order.Moves()),
		Deletes:    len(order.Deletes()),
		DryRun:     dryRun,
	}
}

// PlanFromResult describes what an executor run did
func PlanFromResult(result *executor.Result) Plan {
	applied := types.ExecutionOrder(result.Applied)
	return Plan{
		Operations: result.Applied,
		Pruned:     result.Pruned,
		NotRun:     result.NotRun,
		Moves:      len(applied.Moves()),
		Deletes:    len(applied.Deletes()),
		DryRun:     result.DryRun,
	}
}

// Summary is the one line description of a plan
func (p Plan) Summary() string {
	s := fmt.Sprintf("%d move(s), %d deletion(s)", p.Moves, p.Deletes)
	if len(p.Pruned) > 0 {
		s += fmt.Sprintf(", %d empty dir(s) pruned", len(p.Pruned))
	}
	if p.DryRun {
		s += " (dry run, nothing changed)"
	}
	return s
}

// WritePlan renders p in the requested format
func WritePlan(w io.Writer, format ui.Format, p Plan) error {
	if p.Operations == nil {
		p.Operations = []types.Operation{}
	}

	switch format {
	case ui.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case ui.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, op := range p.Operations {
			if _, err := fmt.Fprintln(w, op.String()); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, p.Summary())
		return err
	}
}
