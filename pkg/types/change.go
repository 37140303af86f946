package types

import (
	"fmt"
)

// Action is the disposition requested for a source path
type Action string

const (
	// ActionDelete removes the source file
	ActionDelete Action = "delete"

	// ActionMove renames the source file to a destination
	ActionMove Action = "move"
)

// Change is a single entry of a ChangeSet
type Change struct {
	// Index is the position of the source in the path index
	Index int `json:"index" yaml:"index"`

	// Source is the canonical path of the discovered file
	Source string `json:"source" yaml:"source"`

	// Action is what should happen to Source
	Action Action `json:"action" yaml:"action"`

	// Destination is the canonical target path, empty for deletions
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// ChangeSet maps source paths to their requested action. Sources that are
// left unchanged never appear in it. Entries keep their insertion order so
// that everything derived from a ChangeSet is deterministic.
type ChangeSet struct {
	changes []Change
	bySrc   map[string]int
}

// NewChangeSet creates an empty change set
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		changes: make([]Change, 0),
		bySrc:   make(map[string]int),
	}
}

// Add inserts a change. A second change for the same source is rejected.
func (cs *ChangeSet) Add(change Change) error {
	if _, exists := cs.bySrc[change.Source]; exists {
		return fmt.Errorf("duplicate change for source %s", change.Source)
	}
	cs.bySrc[change.Source] = len(cs.changes)
	cs.changes = append(cs.changes, change)
	return nil
}

// Get returns the change recorded for source
func (cs *ChangeSet) Get(source string) (Change, bool) {
	i, ok := cs.bySrc[source]
	if !ok {
		return Change{}, false
	}
	return cs.changes[i], true
}

// Has reports whether source has a pending change
func (cs *ChangeSet) Has(source string) bool {
	_, ok := cs.bySrc[source]
	return ok
}

// Len returns the number of changes
func (cs *ChangeSet) Len() int {
	return len(cs.changes)
}

// IsEmpty returns true when nothing was changed
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.changes) == 0
}

// Changes returns a copy of the changes in insertion order
func (cs *ChangeSet) Changes() []Change {
	out := make([]Change, len(cs.changes))
	copy(out, cs.changes)
	return out
}

// Deletions returns the sources marked for deletion, in insertion order
func (cs *ChangeSet) Deletions() []string {
	var out []string
	for _, c := range cs.changes {
		if c.Action == ActionDelete {
			out = append(out, c.Source)
		}
	}
	return out
}
