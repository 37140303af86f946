package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Tree is a temporary directory populated from a path -> content map
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates a fresh temp directory and writes files into it. Keys are
// slash separated paths relative to the root. The root is symlink resolved
// so paths compare equal to canonicalized ones.
func NewTree(t *testing.T, files map[string]string) *Tree {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	tree := &Tree{t: t, Root: root}
	for name, content := range files {
		tree.WriteFile(name, content)
	}
	return tree
}

// Path returns the absolute path of a relative name inside the tree
func (tr *Tree) Path(name string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(name))
}

// WriteFile creates a file, making parent directories as needed
func (tr *Tree) WriteFile(name, content string) string {
	tr.t.Helper()

	path := tr.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tr.t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tr.t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// Mkdir creates a directory inside the tree
func (tr *Tree) Mkdir(name string) string {
	tr.t.Helper()

	path := tr.Path(name)
	if err := os.MkdirAll(path, 0755); err != nil {
		tr.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// Read returns the content of a file in the tree, failing the test if it
// cannot be read
func (tr *Tree) Read(name string) string {
	tr.t.Helper()

	data, err := os.ReadFile(tr.Path(name))
	if err != nil {
		tr.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists, without following a final symlink
func (tr *Tree) Exists(name string) bool {
	_, err := os.Lstat(tr.Path(name))
	return err == nil
}

// Snapshot returns every regular file in the tree with its content, keyed
// by slash separated relative path. Directories appear with a trailing
// slash and empty content so pruning is visible in comparisons.
func (tr *Tree) Snapshot() map[string]string {
	tr.t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(tr.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == tr.Root {
			return nil
		}
		rel, err := filepath.Rel(tr.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		tr.t.Fatalf("Failed to snapshot %s: %v", tr.Root, err)
	}
	return out
}

// Files returns the sorted absolute paths of every regular file in the tree
func (tr *Tree) Files() []string {
	tr.t.Helper()

	var files []string
	for rel := range tr.Snapshot() {
		if rel[len(rel)-1] == '/' {
			continue
		}
		files = append(files, tr.Path(rel))
	}
	sort.Strings(files)
	return files
}

// Symlink creates link pointing at the absolute path of target. Both are
// relative names inside the tree; target need not exist.
func (tr *Tree) Symlink(target, link string) string {
	tr.t.Helper()

	path := tr.Path(link)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tr.t.Fatalf("Failed to create parent directory for symlink %s: %v", path, err)
	}
	if err := os.Symlink(tr.Path(target), path); err != nil {
		tr.t.Fatalf("Failed to create symlink %s -> %s: %v", path, target, err)
	}
	return path
}
