package pathindex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	idx := New([]string{"/a", "/b", "/a", "/c"})

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"/a", "/b", "/c"}, idx.Paths())
}

func TestLookup(t *testing.T) {
	idx := New([]string{"/a", "/b"})

	p, ok := idx.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "/b", p)

	_, ok = idx.Lookup(2)
	assert.False(t, ok)
	_, ok = idx.Lookup(-1)
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	t.Run("single digit count", func(t *testing.T) {
		idx := New([]string{"/x/a", "/x/b"})
		assert.Equal(t, "0 /x/a\n1 /x/b", idx.Render())
	})

	t.Run("padding follows the digit count", func(t *testing.T) {
		paths := make([]string, 12)
		for i := range paths {
			paths[i] = "/f" + strings.Repeat("x", i)
		}
		idx := New(paths)
		assert.Equal(t, 2, idx.Width())

		lines := strings.Split(idx.Render(), "\n")
		require.Len(t, lines, 12)
		assert.Equal(t, "00 /f", lines[0])
		assert.True(t, strings.HasPrefix(lines[11], "11 "))
	})

	t.Run("ten paths need two digits", func(t *testing.T) {
		paths := make([]string, 10)
		for i := range paths {
			paths[i] = "/p" + strings.Repeat("y", i)
		}
		lines := strings.Split(New(paths).Render(), "\n")
		assert.True(t, strings.HasPrefix(lines[9], "09 "))
	})

	t.Run("empty index", func(t *testing.T) {
		assert.Equal(t, "", New(nil).Render())
	})
}
