// Package paths provides centralized path handling for mvi.
//
// Every path that enters the planner goes through Canonicalize so that
// identity comparisons (is this destination the same as that source?) are
// plain string comparisons. The package also resolves the XDG directories
// used for configuration and logs.
package paths
