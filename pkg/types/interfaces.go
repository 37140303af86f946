package types

import (
	"io/fs"
)

// FS defines the filesystem operations needed by mvi
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Mutations the executor performs
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Reporter receives progress notifications from the executor. Every
// effective change is announced before it is performed.
type Reporter interface {
	// PendingDeletes lists every file the plan is about to delete
	PendingDeletes(paths []string)

	// Deleting announces the removal of a single file
	Deleting(path string)

	// Moving announces a rename
	Moving(source, destination string)

	// Collision reports that destination already exists. sameFile is true
	// when both names point at the same underlying file (hard links).
	Collision(source, destination string, sameFile bool)

	// Pruned reports a directory removed because it became empty
	Pruned(dir string)
}
