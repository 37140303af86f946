// Package testutil provides helpers shared by mvi's package tests.
//
// Key components:
//   - Tree: declarative temp directory builder with content assertions
//   - ScriptedConfirmer: replays canned answers to confirmation prompts
//   - RecordingReporter: captures executor notifications in order
//   - StaticEditor: an editor that returns a fixed or computed buffer
//
// All test data should be defined inline, not in external files.
package testutil
