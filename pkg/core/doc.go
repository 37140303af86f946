// Package core runs an mvi session from start to finish.
//
// A session enumerates the requested files, lets the user edit the
// enumerated buffer, parses the edit into a change set, sequences it into
// an execution order and finally applies that order. Everything up to and
// including sequencing is pure planning: parse errors, conflicts and rename
// cycles are reported before the filesystem is touched.
package core
