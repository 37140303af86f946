package types

import (
	"fmt"
)

// OperationKind defines the type of file system operation
type OperationKind string

const (
	// OpDelete removes a file
	OpDelete OperationKind = "delete"

	// OpMove renames a file
	OpMove OperationKind = "move"
)

// Operation represents a resolved unit of work for the executor
type Operation struct {
	Kind        OperationKind `json:"kind" yaml:"kind"`
	Source      string        `json:"source" yaml:"source"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// NewDelete creates a delete operation
func NewDelete(source string) Operation {
	return Operation{Kind: OpDelete, Source: source}
}

// NewMove creates a move operation
func NewMove(source, destination string) Operation {
	return Operation{Kind: OpMove, Source: source, Destination: destination}
}

// OperationFromChange converts a change set entry into its operation
func OperationFromChange(c Change) Operation {
	if c.Action == ActionDelete {
		return NewDelete(c.Source)
	}
	return NewMove(c.Source, c.Destination)
}

func (o Operation) String() string {
	if o.Kind == OpDelete {
		return fmt.Sprintf("rm %s", o.Source)
	}
	return fmt.Sprintf("mv %s -> %s", o.Source, o.Destination)
}

// ExecutionOrder is an ordered list of operations in which no operation
// overwrites a path that a later operation still needs as its source.
type ExecutionOrder []Operation

// Deletes returns the delete operations of the order
func (eo ExecutionOrder) Deletes() []Operation {
	var out []Operation
	for _, op := range eo {
		if op.Kind == OpDelete {
			out = append(out, op)
		}
	}
	return out
}

// Moves returns the move operations of the order
func (eo ExecutionOrder) Moves() []Operation {
	var out []Operation
	for _, op := range eo {
		if op.Kind == OpMove {
			out = append(out, op)
		}
	}
	return out
}
