// pkg/executor/executor_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test plan application, confirmations, collisions and pruning

package executor

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/filesystem"
	"github.com/arthur-debert/mvi/pkg/pruner"
	"github.com/arthur-debert/mvi/pkg/testutil"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	tree      *testutil.Tree
	confirmer *testutil.ScriptedConfirmer
	reporter  *testutil.RecordingReporter
	exec      *Executor
}

func newHarness(t *testing.T, files map[string]string, answers []bool, opts ...Option) *harness {
	t.Helper()
	tree := testutil.NewTree(t, files)
	h := &harness{
		tree:      tree,
		confirmer: testutil.NewScriptedConfirmer(answers...),
		reporter:  &testutil.RecordingReporter{},
	}
	fs := filesystem.NewOS()
	base := []Option{
		WithConfirmer(h.confirmer),
		WithReporter(h.reporter),
		WithPruner(pruner.New(fs, pruner.WithStopAt(tree.Root))),
	}
	h.exec = New(fs, append(base, opts...)...)
	return h
}

func TestExecuteChainMovesContent(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "content-a", "b": "content-b"}, nil)
	p := h.tree.Path

	order := types.ExecutionOrder{
		types.NewMove(p("b"), p("c")),
		types.NewMove(p("a"), p("b")),
	}

	result, err := h.exec.Execute(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"b": "content-a", "c": "content-b"}, h.tree.Snapshot())
	assert.Equal(t, []types.Operation(order), result.Applied)
	assert.Empty(t, result.NotRun)
	assert.Empty(t, h.confirmer.Asked, "no deletes and no collisions means no prompts")
	assert.Equal(t, []string{
		"move " + p("b") + " -> " + p("c"),
		"move " + p("a") + " -> " + p("b"),
	}, h.reporter.Events)
}

func TestExecuteDeletePrunesEmptyParents(t *testing.T) {
	h := newHarness(t, map[string]string{
		"e/d/a":        "doomed",
		"sibling/keep": "kept",
	}, []bool{true})
	p := h.tree.Path

	result, err := h.exec.Execute(context.Background(), types.ExecutionOrder{types.NewDelete(p("e/d/a"))})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"sibling/": "", "sibling/keep": "kept"}, h.tree.Snapshot())
	assert.Equal(t, []string{p("e/d"), p("e")}, result.Pruned)
	assert.Equal(t, []string{types.ConfirmDeleteBatch}, h.confirmer.IDs())
	assert.Equal(t, []string{
		"pending-deletes 1",
		"delete " + p("e/d/a"),
		"pruned " + p("e/d"),
		"pruned " + p("e"),
	}, h.reporter.Events)
}

func TestExecuteDeleteConfirmedOnceBeforeAnyMutation(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "A", "b": "B", "c": "C"}, []bool{true})
	p := h.tree.Path

	order := types.ExecutionOrder{
		types.NewMove(p("c"), p("d")),
		types.NewDelete(p("a")),
		types.NewDelete(p("b")),
	}
	_, err := h.exec.Execute(context.Background(), order)
	require.NoError(t, err)

	require.Len(t, h.confirmer.Asked, 1)
	req := h.confirmer.Asked[0]
	assert.Equal(t, "Delete 2 file(s)?", req.Title)
	assert.Equal(t, []string{p("a"), p("b")}, req.Items)
	assert.Equal(t, map[string]string{"d": "C"}, h.tree.Snapshot())
}

func TestExecuteDeleteDeclinedMutatesNothing(t *testing.T) {
	files := map[string]string{"a": "A", "b": "B"}
	h := newHarness(t, files, []bool{false})
	p := h.tree.Path

	order := types.ExecutionOrder{
		types.NewMove(p("b"), p("c")),
		types.NewDelete(p("a")),
	}
	result, err := h.exec.Execute(context.Background(), order)
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrConfirmationDeclined))
	assert.Equal(t, files, h.tree.Snapshot())
	assert.Empty(t, result.Applied)
	assert.Equal(t, []types.Operation(order), result.NotRun)
}

func TestExecuteCollisionAccepted(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "new", "x": "old"}, []bool{true})
	p := h.tree.Path

	_, err := h.exec.Execute(context.Background(), types.ExecutionOrder{types.NewMove(p("a"), p("x"))})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"x": "new"}, h.tree.Snapshot())
	assert.Equal(t, []string{types.ConfirmOverwrite}, h.confirmer.IDs())
	assert.Equal(t, "collision "+p("a")+" -> "+p("x"), h.reporter.Events[0])
}

func TestExecuteCollisionDeclinedHalts(t *testing.T) {
	files := map[string]string{"a": "A", "x": "X", "m": "M"}
	h := newHarness(t, files, []bool{false})
	p := h.tree.Path

	first := types.NewMove(p("a"), p("x"))
	second := types.NewMove(p("m"), p("n"))
	result, err := h.exec.Execute(context.Background(), types.ExecutionOrder{first, second})
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCollisionDeclined))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, p("a"), details["source"])
	assert.Equal(t, p("x"), details["destination"])

	assert.Equal(t, files, h.tree.Snapshot())
	assert.Empty(t, result.Applied)
	assert.Equal(t, []types.Operation{first, second}, result.NotRun)
}

func TestExecuteCollisionDeclinedKeepsEarlierOperations(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "A", "b": "B", "x": "X"}, []bool{false})
	p := h.tree.Path

	first := types.NewMove(p("a"), p("c"))
	second := types.NewMove(p("b"), p("x"))
	result, err := h.exec.Execute(context.Background(), types.ExecutionOrder{first, second})
	require.Error(t, err)

	assert.Equal(t, []types.Operation{first}, result.Applied)
	assert.Equal(t, []types.Operation{second}, result.NotRun)
	assert.Equal(t, map[string]string{"c": "A", "b": "B", "x": "X"}, h.tree.Snapshot())
}

func TestExecuteHardLinkIsSameFile(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "shared"}, []bool{true})
	p := h.tree.Path
	if err := os.Link(p("a"), p("b")); err != nil {
		t.Skipf("hard links not supported: %v", err)
	}

	_, err := h.exec.Execute(context.Background(), types.ExecutionOrder{types.NewMove(p("a"), p("b"))})
	require.NoError(t, err)

	assert.Equal(t, []string{types.ConfirmSameFile}, h.confirmer.IDs())
	assert.Equal(t, "same-file "+p("a")+" -> "+p("b"), h.reporter.Events[0])
	assert.Equal(t, map[string]string{"b": "shared"}, h.tree.Snapshot())
}

func TestExecuteMoveCreatesParentsAndPrunesSource(t *testing.T) {
	h := newHarness(t, map[string]string{"old/dir/f.txt": "F"}, nil)
	p := h.tree.Path

	result, err := h.exec.Execute(context.Background(), types.ExecutionOrder{
		types.NewMove(p("old/dir/f.txt"), p("new/place/f.txt")),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"new/":            "",
		"new/place/":      "",
		"new/place/f.txt": "F",
	}, h.tree.Snapshot())
	assert.Equal(t, []string{p("old/dir"), p("old")}, result.Pruned)
}

func TestExecuteDryRun(t *testing.T) {
	files := map[string]string{"a": "A", "b": "B", "x": "X"}
	h := newHarness(t, files, nil, WithDryRun(true))
	p := h.tree.Path

	order := types.ExecutionOrder{
		types.NewMove(p("b"), p("x")),
		types.NewDelete(p("a")),
	}
	result, err := h.exec.Execute(context.Background(), order)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []types.Operation(order), result.Applied)
	assert.Equal(t, files, h.tree.Snapshot())
	assert.Empty(t, h.confirmer.Asked)
	assert.Contains(t, h.reporter.Events, "collision "+p("b")+" -> "+p("x"))
}

func TestExecuteIOErrorHalts(t *testing.T) {
	h := newHarness(t, map[string]string{"b": "B"}, nil)
	p := h.tree.Path

	missing := types.NewMove(p("ghost"), p("g2"))
	later := types.NewMove(p("b"), p("c"))
	result, err := h.exec.Execute(context.Background(), types.ExecutionOrder{missing, later})
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "rename", details["op"])
	assert.Equal(t, p("ghost"), details["path"])
	assert.Equal(t, []types.Operation{missing, later}, result.NotRun)
	assert.True(t, h.tree.Exists("b"))
}

func TestExecuteCancelledContext(t *testing.T) {
	h := newHarness(t, map[string]string{"a": "A"}, nil)
	p := h.tree.Path

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := types.NewMove(p("a"), p("b"))
	result, err := h.exec.Execute(ctx, types.ExecutionOrder{op})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []types.Operation{op}, result.NotRun)
	assert.True(t, h.tree.Exists("a"))
}

func TestExecuteWithoutConfirmerDeclines(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A"})
	exec := New(filesystem.NewOS())

	_, err := exec.Execute(context.Background(), types.ExecutionOrder{types.NewDelete(tree.Path("a"))})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfirmationDeclined))
	assert.True(t, tree.Exists("a"))
}

func TestExecuteInMemory(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/w/a", []byte("A"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/w/b", []byte("B"), 0644))
	fs := filesystem.NewAferoFS(mem)

	exec := New(fs, WithConfirmer(testutil.NewScriptedConfirmer()), WithPruner(pruner.New(fs)))
	result, err := exec.Execute(context.Background(), types.ExecutionOrder{
		types.NewMove("/w/b", "/w/sub/c"),
		types.NewMove("/w/a", "/w/b"),
	})
	require.NoError(t, err)
	assert.Len(t, result.Applied, 2)

	data, err := afero.ReadFile(mem, "/w/sub/c")
	require.NoError(t, err)
	assert.Equal(t, "B", string(data))
	data, err = afero.ReadFile(mem, "/w/b")
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))
}
