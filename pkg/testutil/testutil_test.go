package testutil

import (
	"context"
	"testing"

	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	tree := NewTree(t, map[string]string{
		"a.txt":     "A",
		"sub/b.txt": "B",
	})
	tree.Mkdir("empty")

	assert.Equal(t, "A", tree.Read("a.txt"))
	assert.True(t, tree.Exists("sub/b.txt"))
	assert.False(t, tree.Exists("missing"))
	assert.Equal(t, map[string]string{
		"a.txt":     "A",
		"sub/":      "",
		"sub/b.txt": "B",
		"empty/":    "",
	}, tree.Snapshot())
	assert.Equal(t, []string{tree.Path("a.txt"), tree.Path("sub/b.txt")}, tree.Files())
}

func TestScriptedConfirmer(t *testing.T) {
	c := NewScriptedConfirmer(true, false)

	ok, err := c.Confirm(types.ConfirmationRequest{ID: "one"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = c.Confirm(types.ConfirmationRequest{ID: "two"})
	assert.False(t, ok)

	c.Fallback = true
	ok, _ = c.Confirm(types.ConfirmationRequest{ID: "three"})
	assert.True(t, ok)

	assert.Equal(t, []string{"one", "two", "three"}, c.IDs())
}

func TestStaticEditor(t *testing.T) {
	e := &StaticEditor{Buffer: "fixed"}
	out, err := e.Edit(context.Background(), "input")
	require.NoError(t, err)
	assert.Equal(t, "fixed", out)
	assert.Equal(t, "input", e.Seen)

	e = &StaticEditor{Transform: func(s string) string { return s + "!" }}
	out, _ = e.Edit(context.Background(), "input")
	assert.Equal(t, "input!", out)
	assert.Equal(t, 1, e.Calls)
}
