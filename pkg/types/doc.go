// Package types defines the core types and interfaces used throughout mvi.
// This includes the change set produced from an edited buffer, the
// operations the planner orders, and the seams (FS, Confirmer, Reporter)
// the executor is built on.
package types
