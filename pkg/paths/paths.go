package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/mvi/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for mvi
	EnvConfigDir = "MVI_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// AppDirName is the directory name for mvi-specific files under XDG dirs
const AppDirName = "mvi"

// Canonicalize returns the absolute, cleaned, symlink-resolved form of path.
// Paths that do not exist yet are resolved through their longest existing
// ancestor, so a destination canonicalizes the same way its future file
// will.
func Canonicalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for %s", path)
	}
	abs = filepath.Clean(abs)

	existing := abs
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", path)
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append(rest, filepath.Base(existing))
		existing = parent
	}
}

// CanonicalizeDestination canonicalizes the directory holding path but
// keeps the final component as written. A destination that names an
// existing symlink therefore stays the link itself, which is what a rename
// replaces.
func CanonicalizeDestination(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for %s", path)
	}
	abs = filepath.Clean(abs)

	dir := filepath.Dir(abs)
	if dir == abs {
		return abs, nil
	}
	resolvedDir, err := Canonicalize(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(abs)), nil
}

// Resolver resolves user supplied paths against a working directory
type Resolver struct {
	wd string
}

// NewResolver creates a resolver bound to the process working directory
func NewResolver() (*Resolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "could not get current working directory")
	}
	return &Resolver{wd: wd}, nil
}

// NewResolverAt creates a resolver bound to dir
func NewResolverAt(dir string) *Resolver {
	return &Resolver{wd: dir}
}

// WorkDir returns the directory relative paths are resolved against
func (r *Resolver) WorkDir() string {
	return r.wd
}

// Resolve makes path absolute and clean without touching the filesystem
func (r *Resolver) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.wd, path)
}

// Canonical resolves path against the working directory and canonicalizes it
func (r *Resolver) Canonical(path string) (string, error) {
	return Canonicalize(r.Resolve(path))
}

// Destination resolves path against the working directory as a rename
// target, see CanonicalizeDestination
func (r *Resolver) Destination(path string) (string, error) {
	return CanonicalizeDestination(r.Resolve(path))
}

// ConfigDir returns the mvi configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// IsWithin reports whether path is dir or lies below it. Both arguments
// must be canonical.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !hasDotDotPrefix(rel))
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && rel[2] == filepath.Separator
}
