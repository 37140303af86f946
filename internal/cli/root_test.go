package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command in isolation from the user's environment
func execute(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()

	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("MVI_CONFIG_DIR", t.TempDir())
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeBuffer(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buffer.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestPrintBuffer(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "", "sub/b": ""})

	res := execute(t, "", "--print-buffer", tree.Root)
	require.NoError(t, res.err)
	assert.Equal(t, fmt.Sprintf("0 %s\n1 %s\n", tree.Path("a"), tree.Path("sub/b")), res.stdout)
}

func TestPrintBufferMaxDepth(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "", "sub/b": ""})

	res := execute(t, "", "--print-buffer", "-d", "1", tree.Root)
	require.NoError(t, res.err)
	assert.Equal(t, fmt.Sprintf("0 %s\n1 %s\n", tree.Path("a"), tree.Path("sub")), res.stdout)
}

func TestApplyBufferRename(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A", "b": "B"})
	buffer := writeBuffer(t, "0 "+tree.Path("b"), "1 "+tree.Path("c"))

	res := execute(t, "", "--buffer", buffer, tree.Root)
	require.NoError(t, res.err)

	assert.Equal(t, map[string]string{"b": "A", "c": "B"}, tree.Snapshot())
	assert.Contains(t, res.stdout, "mv ")
	assert.Contains(t, res.stdout, "2 move(s), 0 deletion(s)")
}

func TestApplyBufferFromStdin(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A"})

	res := execute(t, "0 "+tree.Path("z")+"\n", "--buffer", "-", tree.Root)
	require.NoError(t, res.err)
	assert.Equal(t, map[string]string{"z": "A"}, tree.Snapshot())
}

func TestApplyBufferUnchanged(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A"})
	buffer := writeBuffer(t, "0 "+tree.Path("a"))

	res := execute(t, "", "--buffer", buffer, tree.Root)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, MsgNoChanges)
	assert.Equal(t, map[string]string{"a": "A"}, tree.Snapshot())
}

func TestApplyBufferCycle(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A", "b": "B"})
	buffer := writeBuffer(t, "0 "+tree.Path("b"), "1 "+tree.Path("a"))

	res := execute(t, "", "--buffer", buffer, tree.Root)
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrCycle))
	assert.Contains(t, ErrorMessage(res.err), "filename cycle detected")
	assert.Equal(t, map[string]string{"a": "A", "b": "B"}, tree.Snapshot())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	t.Run("declined on stdin", func(t *testing.T) {
		tree := testutil.NewTree(t, map[string]string{"a": "A"})
		buffer := writeBuffer(t, "0 delete")

		res := execute(t, "n\n", "--buffer", buffer, tree.Root)
		assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfirmationDeclined))
		assert.True(t, tree.Exists("a"))
		assert.Contains(t, res.stdout, "The following files will be deleted:")
		assert.Contains(t, res.stderr, "Delete 1 file(s)?")
	})

	t.Run("accepted on stdin", func(t *testing.T) {
		tree := testutil.NewTree(t, map[string]string{"a": "A", "keep": "K"})
		buffer := writeBuffer(t, "0 rm")

		res := execute(t, "y\n", "--buffer", buffer, tree.Root)
		require.NoError(t, res.err)
		assert.False(t, tree.Exists("a"))
	})

	t.Run("yes flag", func(t *testing.T) {
		tree := testutil.NewTree(t, map[string]string{"a": "A", "keep": "K"})
		buffer := writeBuffer(t, "0 unlink")

		res := execute(t, "", "--yes", "--buffer", buffer, tree.Root)
		require.NoError(t, res.err)
		assert.Equal(t, map[string]string{"keep": "K"}, tree.Snapshot())
	})
}

func TestDryRunJSON(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": "A", "b": "B"})
	buffer := writeBuffer(t, "0 delete", "1 "+tree.Path("c"))

	res := execute(t, "", "--dry-run", "--format", "json", "--buffer", buffer, tree.Root)
	require.NoError(t, res.err)

	var plan struct {
		Operations []map[string]string `json:"operations"`
		DryRun     bool                `json:"dry_run"`
		Deletes    int                 `json:"deletes"`
		Moves      int                 `json:"moves"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &plan))
	assert.True(t, plan.DryRun)
	assert.Equal(t, 1, plan.Deletes)
	assert.Equal(t, 1, plan.Moves)
	assert.Len(t, plan.Operations, 2)
	assert.Contains(t, res.stderr, "The following files will be deleted:")
	assert.Equal(t, map[string]string{"a": "A", "b": "B"}, tree.Snapshot())
}

func TestNoFilesSelected(t *testing.T) {
	tree := testutil.NewTree(t, nil)
	tree.Mkdir("empty")

	res := execute(t, "", "--print-buffer", tree.Path("empty"))
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, MsgNoFiles)
	assert.Empty(t, res.stdout)
}

func TestNoPruneFlag(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"d/f": "F"})
	buffer := writeBuffer(t, "0 "+tree.Path("f"))

	res := execute(t, "", "--no-prune", "--buffer", buffer, tree.Root)
	require.NoError(t, res.err)
	assert.Equal(t, map[string]string{"d/": "", "f": "F"}, tree.Snapshot())
}

func TestExcludeFlag(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a.txt": "", "b.log": ""})

	res := execute(t, "", "--print-buffer", "--exclude", "*.log", tree.Root)
	require.NoError(t, res.err)
	assert.Equal(t, "0 "+tree.Path("a.txt")+"\n", res.stdout)
}

func TestBadFlagValues(t *testing.T) {
	tree := testutil.NewTree(t, map[string]string{"a": ""})

	res := execute(t, "", "--format", "xml", "--print-buffer", tree.Root)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigParse))

	res = execute(t, "", "--buffer", "/nonexistent/buffer", tree.Root)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrIO))
}

func TestVersionCmd(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mvi version")
}

func TestConfigCmd(t *testing.T) {
	res := execute(t, "", "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[discovery]")
	assert.Contains(t, res.stdout, "max_depth = -1")

	res = execute(t, "", "config", "--defaults")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "# mvi configuration")
}

func TestCompletionCmd(t *testing.T) {
	res := execute(t, "", "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mvi")

	res = execute(t, "", "completion", "tcsh")
	assert.Error(t, res.err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "plain", ErrorMessage(fmt.Errorf("plain")))
	assert.Equal(t, "line 2: bad index", ErrorMessage(errors.New(errors.ErrParse, "line 2: bad index")))
	assert.Equal(t, "rename failed: boom",
		ErrorMessage(errors.Wrap(fmt.Errorf("boom"), errors.ErrIO, "rename failed")))
}
