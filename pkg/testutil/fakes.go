package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/mvi/pkg/types"
)

// ScriptedConfirmer answers confirmation requests from a fixed script.
// Once the script runs out it answers Fallback. Every request is recorded.
type ScriptedConfirmer struct {
	mu       sync.Mutex
	Answers  []bool
	Fallback bool
	Asked    []types.ConfirmationRequest
}

// NewScriptedConfirmer returns a confirmer that replays answers in order
func NewScriptedConfirmer(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{Answers: answers}
}

// Confirm implements types.Confirmer
func (s *ScriptedConfirmer) Confirm(req types.ConfirmationRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, req)
	if len(s.Answers) == 0 {
		return s.Fallback, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// IDs returns the IDs of every request seen so far
func (s *ScriptedConfirmer) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.Asked))
	for i, req := range s.Asked {
		ids[i] = req.ID
	}
	return ids
}

// RecordingReporter implements types.Reporter and records every event as a
// short string such as "move a -> b" or "pruned d".
type RecordingReporter struct {
	mu     sync.Mutex
	Events []string
}

func (r *RecordingReporter) record(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) PendingDeletes(paths []string) {
	r.record("pending-deletes %d", len(paths))
}

func (r *RecordingReporter) Deleting(path string) {
	r.record("delete %s", path)
}

func (r *RecordingReporter) Moving(source, destination string) {
	r.record("move %s -> %s", source, destination)
}

func (r *RecordingReporter) Collision(source, destination string, sameFile bool) {
	if sameFile {
		r.record("same-file %s -> %s", source, destination)
		return
	}
	r.record("collision %s -> %s", source, destination)
}

func (r *RecordingReporter) Pruned(dir string) {
	r.record("pruned %s", dir)
}

// StaticEditor stands in for the external editor. When Transform is set it
// receives the rendered buffer; otherwise Buffer is returned as is.
type StaticEditor struct {
	Buffer    string
	Transform func(string) string
	Err       error

	// Seen holds the last buffer handed to the editor
	Seen  string
	Calls int
}

// Edit implements editor.Editor
func (e *StaticEditor) Edit(ctx context.Context, text string) (string, error) {
	e.Calls++
	e.Seen = text
	if e.Err != nil {
		return "", e.Err
	}
	if e.Transform != nil {
		return e.Transform(text), nil
	}
	return e.Buffer, nil
}
