package display

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/mvi/pkg/executor"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/arthur-debert/mvi/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleOrder = types.ExecutionOrder{
	types.NewMove("/r/b", "/r/c"),
	types.NewMove("/r/a", "/r/b"),
	types.NewDelete("/r/z"),
}

func TestWritePlanText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePlan(&out, ui.FormatText, NewPlan(sampleOrder, true)))

	assert.Equal(t, "mv /r/b -> /r/c\n"+
		"mv /r/a -> /r/b\n"+
		"rm /r/z\n"+
		"2 move(s), 1 deletion(s) (dry run, nothing changed)\n", out.String())
}

func TestWritePlanJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePlan(&out, ui.FormatJSON, NewPlan(sampleOrder, true)))

	var decoded Plan
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, []types.Operation(sampleOrder), decoded.Operations)
	assert.Equal(t, 2, decoded.Moves)
	assert.Equal(t, 1, decoded.Deletes)
	assert.True(t, decoded.DryRun)
	assert.Contains(t, out.String(), `"kind": "move"`)
}

func TestWritePlanYAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePlan(&out, ui.FormatYAML, NewPlan(nil, false)))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, []interface{}{}, decoded["operations"])
	assert.Equal(t, false, decoded["dry_run"])
}

func TestPlanFromResult(t *testing.T) {
	p := PlanFromResult(&executor.Result{
		Applied: []types.Operation{types.NewDelete("/r/e/d/a")},
		Pruned:  []string{"/r/e/d", "/r/e"},
		NotRun:  []types.Operation{types.NewMove("/r/x", "/r/y")},
	})

	assert.Equal(t, 1, p.Deletes)
	assert.Equal(t, 0, p.Moves)
	assert.Equal(t, "0 move(s), 1 deletion(s), 2 empty dir(s) pruned", p.Summary())
	assert.Len(t, p.NotRun, 1)
}
