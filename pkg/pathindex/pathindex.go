// Package pathindex holds the enumerated list of discovered files shown to
// the user. Indices are stable for the lifetime of an Index.
package pathindex

import (
	"fmt"
	"strconv"
	"strings"
)

// Index is an ordered, deduplicated list of canonical file paths
type Index struct {
	paths []string
	pos   map[string]int
}

// New builds an index from paths, dropping repeated entries but otherwise
// keeping the given order
func New(paths []string) *Index {
	idx := &Index{
		paths: make([]string, 0, len(paths)),
		pos:   make(map[string]int, len(paths)),
	}
	for _, p := range paths {
		if _, seen := idx.pos[p]; seen {
			continue
		}
		idx.pos[p] = len(idx.paths)
		idx.paths = append(idx.paths, p)
	}
	return idx
}

// Len returns the number of indexed paths
func (idx *Index) Len() int {
	return len(idx.paths)
}

// Paths returns a copy of the indexed paths
func (idx *Index) Paths() []string {
	out := make([]string, len(idx.paths))
	copy(out, idx.paths)
	return out
}

// Lookup returns the path stored at i
func (idx *Index) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(idx.paths) {
		return "", false
	}
	return idx.paths[i], true
}

// Width is the zero-padding width of rendered indices: the number of digits
// in the count of paths, so that indices sort lexically
func (idx *Index) Width() int {
	return len(strconv.Itoa(len(idx.paths)))
}

// Render produces the editable buffer, one "<index> <path>" line per file
func (idx *Index) Render() string {
	width := idx.Width()
	lines := make([]string, len(idx.paths))
	for i, p := range idx.paths {
		lines[i] = fmt.Sprintf("%0*d %s", width, i, p)
	}
	return strings.Join(lines, "\n")
}
