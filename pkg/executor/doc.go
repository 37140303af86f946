// Package executor applies an ExecutionOrder to the filesystem.
//
// Deletions are confirmed once as a batch before anything is touched.
// Operations then run strictly in order; a colliding destination requires
// its own confirmation, and every file removed or moved away gives the
// pruner a chance to clean up directories it left empty. The first failure
// or declined collision halts the rest of the plan. Nothing is rolled back.
package executor
