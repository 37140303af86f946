// Package planner validates a change set and orders it for execution.
//
// The ordering rule: a move into a path may only run once whatever
// currently occupies that path, if it is itself a pending source, has been
// moved or deleted. Sequence peels off every entry that is safe right now,
// in change set order, and repeats until nothing is left. Because every
// source has at most one destination the dependency graph is functional,
// so if a round finds nothing safe the remainder contains a cycle.
//
// The complete ExecutionOrder is built before anything touches disk.
package planner
