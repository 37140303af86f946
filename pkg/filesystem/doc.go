// Package filesystem provides filesystem implementations for mvi.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the CLI and an afero-backed one used by
// tests that do not need real rename(2) semantics.
package filesystem
